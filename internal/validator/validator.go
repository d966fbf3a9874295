// Package validator checks resolved configuration structs before a run.
package validator

import (
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
	playground "github.com/go-playground/validator/v10"
)

// validate is shared by every Struct call.
var validate *playground.Validate

func init() {
	validate = playground.New()

	// Report yaml key names so failures read like the config file.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// stem: a bare module name, no extension and no path separators.
	_ = validate.RegisterValidation("stem", func(fl playground.FieldLevel) bool {
		s := fl.Field().String()
		return s != "" && !strings.ContainsAny(s, `/\.`)
	})
}

// Struct validates v and flattens any field errors into a single message
// phrased in config-file terms.
func Struct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, fe.Field()+" ("+fe.Tag()+")")
	}
	return errors.Newf("invalid configuration: %s", strings.Join(parts, ", "))
}
