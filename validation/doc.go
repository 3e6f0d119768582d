// Package validation validates configuration and input structs.
//
// Struct tag validation uses go-playground/validator; failures come back as
// an *errors.AppError whose details list every offending field.
//
//	type TranslatorConfig struct {
//	    BaseURL string `mapstructure:"base_url" validate:"required,url"`
//	}
//	err := validation.Validate(cfg)
//
// Hand-written checks collect into FieldErrors and convert the same way:
//
//	var fe validation.FieldErrors
//	if cfg.Source == cfg.Target {
//	    fe.Add("target", "must differ from source")
//	}
//	return fe.Err()
package validation
