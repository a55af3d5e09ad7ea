package model

import "github.com/golangsnmp/goasn1/tag"

// TagProperty is implemented by nodes that may carry an explicit tag.
type TagProperty interface {
	Tag() (tag.Tag, bool)
	SetTag(t tag.Tag)
	ResetTag()
}

// Tagging implements TagProperty. Embed it to make a node taggable.
type Tagging struct {
	tag *tag.Tag
}

// Tag returns the explicit tag, if any.
func (t Tagging) Tag() (tag.Tag, bool) {
	if t.tag == nil {
		return tag.Tag{}, false
	}
	return *t.tag, true
}

// SetTag sets the explicit tag.
func (t *Tagging) SetTag(v tag.Tag) {
	t.tag = &v
}

// ResetTag removes the explicit tag.
func (t *Tagging) ResetTag() {
	t.tag = nil
}

// WithTag returns a copy of v carrying tag t. v itself is unchanged.
func WithTag[T any, PT interface {
	*T
	TagProperty
}](v T, t tag.Tag) T {
	PT(&v).SetTag(t)
	return v
}

// WithoutTag returns a copy of v with no explicit tag.
func WithoutTag[T any, PT interface {
	*T
	TagProperty
}](v T) T {
	PT(&v).ResetTag()
	return v
}

// WithTagOpt returns a copy of v carrying t, or no tag when t is nil.
func WithTagOpt[T any, PT interface {
	*T
	TagProperty
}](v T, t *tag.Tag) T {
	if t == nil {
		return WithoutTag[T, PT](v)
	}
	return WithTag[T, PT](v, *t)
}

// TagOf returns the tag of p or def when p carries none.
func TagOf(p interface{ Tag() (tag.Tag, bool) }, def tag.Tag) tag.Tag {
	if t, ok := p.Tag(); ok {
		return t
	}
	return def
}
