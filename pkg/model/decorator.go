package model

// Decorator adjusts a file manager form after it is built from the embedded
// OpenAPI document and before forms.Catalog hands it out, for example to
// relabel fields or add placeholders for a deployment.
type Decorator interface {
	Decorate(*FormModel) error
}

// DecoratorFunc lets a plain function act as a Decorator.
type DecoratorFunc func(*FormModel) error

// Decorate runs fn against form.
func (fn DecoratorFunc) Decorate(form *FormModel) error {
	if fn == nil {
		return nil
	}
	return fn(form)
}
