package lexer

import (
	"analex/internal/diag"
	"analex/internal/suggest"
	"analex/internal/token"
)

// Registry is the name memory the lexer consults to tell identifiers from
// variables. session.Run implements it.
type Registry interface {
	Lookup(name string) bool
	Register(name string)
	Count(k token.Kind)
}

type Options struct {
	Reporter diag.Reporter   // может быть nil: ошибки игнорируем, но продолжаем лексить
	Registry Registry        // nil: приватный реестр на один проход
	Suggest  *suggest.Engine // nil: suggest.New(suggest.DefaultThreshold)
}

// localRegistry backs a lexer used without a session.
type localRegistry map[string]struct{}

func (r localRegistry) Lookup(name string) bool { _, ok := r[name]; return ok }
func (r localRegistry) Register(name string)    { r[name] = struct{}{} }
func (r localRegistry) Count(token.Kind)        {}
