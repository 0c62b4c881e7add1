package config

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"git.home.luguber.info/inful/mksite/internal/foundation/errors"
)

// Validate checks the configuration invariants. It returns a validation
// ClassifiedError wrapping the ozzo field errors.
func (c *Config) Validate() error {
	if err := c.validate(); err != nil {
		return errors.WrapError(err, errors.CategoryValidation, "invalid configuration").
			Fatal().
			WithContext("file", c.path).
			Build()
	}
	return nil
}

func (c *Config) validate() error {
	if err := c.Dirs.Validate(); err != nil {
		return fmt.Errorf("dirs: %w", err)
	}
	if err := c.Build.Validate(); err != nil {
		return fmt.Errorf("build: %w", err)
	}
	return c.validateTransforms()
}

// Validate validates the directory roots.
func (d *Dirs) Validate() error {
	return validation.ValidateStruct(d,
		validation.Field(&d.Src, validation.Required),
		validation.Field(&d.Out, validation.Required),
		validation.Field(&d.Static, validation.Required),
		validation.Field(&d.Layout, validation.Required),
	)
}

// Validate validates the build options.
func (b *BuildConfig) Validate() error {
	return validation.ValidateStruct(b,
		validation.Field(&b.Jobs, validation.Min(0)),
	)
}

func (c *Config) validateTransforms() error {
	for src, targets := range c.Transforms {
		if err := validateExtension(src); err != nil {
			return fmt.Errorf("transforms: source extension %q: %w", src, err)
		}
		for dst, t := range targets {
			if err := validateExtension(dst); err != nil {
				return fmt.Errorf("transforms.%s: target extension %q: %w", src, dst, err)
			}
			if err := t.Validate(); err != nil {
				return fmt.Errorf("transforms.%s.%s: %w", src, dst, err)
			}
		}
	}
	return nil
}

var extensionRule = validation.By(func(value any) error {
	ext, _ := value.(string)
	if strings.ContainsAny(ext, `/\`) {
		return validation.NewError("validation_extension_separator", "must not contain path separators")
	}
	if strings.HasPrefix(ext, ".") {
		return validation.NewError("validation_extension_dot", "must be written without a leading dot")
	}
	return nil
})

func validateExtension(ext string) error {
	return validation.Validate(ext, validation.Required, extensionRule)
}
