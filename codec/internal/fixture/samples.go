// Package fixture holds the codec types asn1go generates for fixture.asn,
// plus hand-written views and sample values for the format tests.
package fixture

import (
	"github.com/golangsnmp/goasn1/codec"
	"github.com/golangsnmp/goasn1/tag"
)

//go:generate go run ../../../cmd/asn1go generate -p fixture -o . fixture.asn

// PersonV1 is Person as seen by a schema without the extension
// additions.
type PersonV1 struct {
	Name  string
	Age   int64
	Email *string
	Color Color
}

var personV1Meta = codec.SequenceMeta{
	ID:             tag.DefaultSequence,
	TypeName:       "Person",
	Fields:         4,
	StdOptional:    2,
	Extensible:     true,
	ExtensionAfter: 3,
}

func (v *PersonV1) ReadASN1(r codec.Reader) error {
	return r.ReadSequence(personV1Meta, func(r codec.Reader) error {
		var err error
		if v.Name, err = personName.ReadValue(r); err != nil {
			return err
		}
		if v.Age, err = personAge.ReadValue(r); err != nil {
			return err
		}
		if v.Email, err = personEmail.ReadValue(r); err != nil {
			return err
		}
		if v.Color, err = personColor.ReadValue(r); err != nil {
			return err
		}
		return nil
	})
}

func (v *PersonV1) WriteASN1(w codec.Writer) error {
	return w.WriteSequence(personV1Meta, func(w codec.Writer) error {
		if err := personName.WriteValue(w, v.Name); err != nil {
			return err
		}
		if err := personAge.WriteValue(w, v.Age); err != nil {
			return err
		}
		if err := personEmail.WriteValue(w, v.Email); err != nil {
			return err
		}
		return personColor.WriteValue(w, v.Color)
	})
}

// strictBody reads Body as a non-extensible open type with only its root
// variants.
var strictBody = codec.OpenTypeField[Body, *Body]{
	C: codec.VariantMeta{ID: tag.DefaultSequence, TypeName: "Body", Variants: 2, StdVariants: 2},
}

// StrictMessage reads a Message whose body is not extensible.
type StrictMessage struct{ Message }

func (v *StrictMessage) ReadASN1(r codec.Reader) error {
	return r.ReadSequence(messageMeta, func(r codec.Reader) error {
		var err error
		if v.Kind, err = messageKind.ReadValue(r); err != nil {
			return err
		}
		v.Body, v.BodyKnown, err = strictBody.ReadValueByKey(r, uint64(v.Kind))
		return err
	})
}

// FutureMessage writes a Message whose body is Text under any Kind, as
// a writer with a different Body would.
type FutureMessage struct {
	Kind int64
	Text string
}

func (v *FutureMessage) WriteASN1(w codec.Writer) error {
	return w.WriteSequence(messageMeta, func(w codec.Writer) error {
		if err := messageKind.WriteValue(w, v.Kind); err != nil {
			return err
		}
		return messageBody.WriteValue(w, Body{Text: &v.Text})
	})
}

// Samples returns one value of every fixture type, for round-trip
// tests. Each call returns fresh values.
func Samples() map[string]Value {
	email, nick, label, text := "ada@example.org", "ada", "hexagon", "hello"
	circle := int64(42)
	flags := codec.NewBits(8)
	flags.Set(0, true)
	flags.Set(7, true)
	return map[string]Value{
		"point":             &Point{X: 1, Y: -1},
		"person minimal":    &Person{Name: "Ada", Age: 36, Color: ColorGreen, Tags: []string{}},
		"person full":       &Person{Name: "Ada", Age: 36, Email: &email, Color: ColorBlue, Nick: &nick, Tags: []string{"A", "B c"}},
		"shape circle":      &Shape{Circle: &circle},
		"shape square":      &Shape{Square: &Point{X: 3, Y: 4}},
		"shape label":       &Shape{Label: &label},
		"message ping":      &Message{Kind: 0, Body: Body{Ping: &struct{}{}}, BodyKnown: true},
		"message text":      &Message{Kind: 1, Body: Body{Text: &text}, BodyKnown: true},
		"message point":     &Message{Kind: 2, Body: Body{Point: &Point{X: -300, Y: 70000}}, BodyKnown: true},
		"record":            &Record{Active: true, Flags: flags, Data: []byte{1, 2, 3}, Code: "12 4", Big: 1_000_000, Level: 5, Digits: []int64{3, 1, 2}},
		"record extensible": &Record{Flags: codec.NewBits(8), Data: []byte{}, Code: "0000", Big: 1000, Level: 99, Digits: []int64{}},
	}
}

// Value is a fixture value.
type Value interface {
	codec.Readable
	codec.Writable
}

// New returns a zero value of the same type as v.
func New(v Value) Value {
	switch v.(type) {
	case *Point:
		return &Point{}
	case *Person:
		return &Person{}
	case *Shape:
		return &Shape{}
	case *Message:
		return &Message{}
	case *Record:
		return &Record{}
	}
	panic("fixture: unknown type")
}
