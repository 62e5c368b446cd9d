package region

// DistrictForm holds the senatorial district modal state.
// The LGA choices always belong to the selected state.
type DistrictForm struct {
	Input DistrictInput
	lgas  []LGA
}

// NewDistrictForm seeds the form from the district being edited (nil when adding) and all known LGAs.
func NewDistrictForm(editing *SenatorialDistrict, lgas []LGA) *DistrictForm {
	form := &DistrictForm{lgas: lgas}
	if editing != nil {
		form.Input = DistrictInput{
			Name:    editing.Name,
			Code:    editing.Code,
			StateID: editing.StateID,
			LGAIDs:  append([]string(nil), editing.LGAIDs...),
		}
	}
	return form
}

// SetState selects a state. Picking a different state clears the selected LGAs.
func (f *DistrictForm) SetState(stateID string) {
	if stateID != f.Input.StateID {
		f.Input.LGAIDs = nil
	}
	f.Input.StateID = stateID
}

// LGAOptions returns the LGAs selectable for the current state.
func (f *DistrictForm) LGAOptions() []LGA {
	return LGAsOfState(f.lgas, f.Input.StateID)
}

// ToggleLGA selects or unselects an LGA. LGAs outside the current state are ignored.
func (f *DistrictForm) ToggleLGA(lgaID string) bool {
	for i, id := range f.Input.LGAIDs {
		if id == lgaID {
			f.Input.LGAIDs = append(f.Input.LGAIDs[:i:i], f.Input.LGAIDs[i+1:]...)
			return true
		}
	}
	for _, lga := range f.LGAOptions() {
		if lga.ID == lgaID {
			f.Input.LGAIDs = append(f.Input.LGAIDs, lgaID)
			return true
		}
	}
	return false
}

// LGAsOfState keeps the LGAs whose state_id matches stateID. No state means no options.
func LGAsOfState(lgas []LGA, stateID string) []LGA {
	opts := make([]LGA, 0)
	if stateID == "" {
		return opts
	}
	for _, lga := range lgas {
		if lga.StateID == stateID {
			opts = append(opts, lga)
		}
	}
	return opts
}
