package parser

const msgEnd = "expected end of source, but found more"

// ParseError is returned when a top-level parse fails or leaves input
// unconsumed.
type ParseError struct {
	Failure *Failure
}

func (e *ParseError) Error() string {
	return e.Failure.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Failure
}

// Driver runs top-level parsers against one Source.
type Driver struct {
	src *Source
}

func NewDriver(src *Source) *Driver {
	return &Driver{src: src}
}

func (d *Driver) Source() *Source {
	return d.src
}

// Run matches p at the driver's current position.
func Run[T any](d *Driver, p *Parser[T]) Result[T] {
	return p.Match(d.src)
}

// End returns a *ParseError unless all input has been consumed.
func (d *Driver) End() error {
	if d.src.HasMore() {
		return &ParseError{Failure: d.src.Error(msgEnd)}
	}
	return nil
}

// Parse matches p against text and requires it to consume everything.
func Parse[T any](p *Parser[T], text string, opts ...Option) (T, error) {
	var zero T
	d := NewDriver(NewSource(text, opts...))
	r := Run(d, p)
	if !r.Matched() {
		return zero, &ParseError{Failure: r.Failure()}
	}
	if err := d.End(); err != nil {
		return zero, err
	}
	return r.Value(), nil
}
