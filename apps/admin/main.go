package main

import (
	"log"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	dig_container "github.com/trezcool/edudash/apps/api/di/dig"
	echoapi "github.com/trezcool/edudash/apps/api/echo"
	"github.com/trezcool/edudash/core"
)

func main() {
	c := dig_container.New()

	var code int
	err := c.Invoke(func(
		conf *core.Config,
		logger core.Logger,
		validate *validator.Validate,
		translator ut.Translator,
		svc echoapi.Services,
	) {
		cli := commandLine{
			svc:        svc,
			conf:       conf,
			logger:     logger,
			validate:   validate,
			translator: translator,
			in:         os.Stdin,
			out:        os.Stdout,
		}
		if err := cli.run(os.Args); err != nil {
			if err != errHelp {
				errColor.Fprintf(os.Stderr, "\nerror: %s\n", err)
			}
			code = 1
		}
	})
	if err != nil {
		log.Fatal(err)
	}
	os.Exit(code)
}
