package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testLGAs = []LGA{
	{ID: "1", Name: "Ikeja", StateID: "1"},
	{ID: "2", Name: "Eti-Osa", StateID: "1"},
	{ID: "4", Name: "Abeokuta South", StateID: "2"},
}

func lgaIDs(lgas []LGA) []string {
	ids := make([]string, len(lgas))
	for i, lga := range lgas {
		ids[i] = lga.ID
	}
	return ids
}

func TestLGAsOfState(t *testing.T) {
	assert.Equal(t, []string{"1", "2"}, lgaIDs(LGAsOfState(testLGAs, "1")))
	assert.Equal(t, []string{"4"}, lgaIDs(LGAsOfState(testLGAs, "2")))
	assert.Empty(t, LGAsOfState(testLGAs, "3"))
	assert.NotNil(t, LGAsOfState(testLGAs, ""))
	assert.Empty(t, LGAsOfState(testLGAs, ""))
}

func TestDistrictForm(t *testing.T) {
	form := NewDistrictForm(nil, testLGAs)
	assert.Empty(t, form.LGAOptions(), "no state, no LGA choices")
	assert.False(t, form.ToggleLGA("1"))

	form.SetState("1")
	assert.Equal(t, []string{"1", "2"}, lgaIDs(form.LGAOptions()))
	assert.True(t, form.ToggleLGA("2"))
	assert.True(t, form.ToggleLGA("1"))
	assert.False(t, form.ToggleLGA("4"), "LGA of another state")
	assert.Equal(t, []string{"2", "1"}, form.Input.LGAIDs)

	assert.True(t, form.ToggleLGA("2"))
	assert.Equal(t, []string{"1"}, form.Input.LGAIDs)

	form.SetState("1")
	assert.Equal(t, []string{"1"}, form.Input.LGAIDs, "same state keeps the selection")
	form.SetState("2")
	assert.Empty(t, form.Input.LGAIDs)
	assert.Equal(t, []string{"4"}, lgaIDs(form.LGAOptions()))
}

func TestNewDistrictForm_editing(t *testing.T) {
	sd := &SenatorialDistrict{Name: "Lagos East", Code: "LAE", StateID: "1", LGAIDs: []string{"2"}}
	form := NewDistrictForm(sd, testLGAs)
	assert.Equal(t, DistrictInput{Name: "Lagos East", Code: "LAE", StateID: "1", LGAIDs: []string{"2"}}, form.Input)

	form.ToggleLGA("1")
	assert.Equal(t, []string{"2"}, sd.LGAIDs, "editing a copy")
}

func TestLGAFilter_Set(t *testing.T) {
	var f LGAFilter
	assert.NoError(t, f.Set("state_id", " 2 "))
	assert.Equal(t, "2", f.StateID)
	assert.EqualError(t, f.Set("state", "Lagos"), "state: unknown filter")
}
