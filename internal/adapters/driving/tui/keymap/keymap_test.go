package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	assert.Contains(t, km.Quit.Keys(), "ctrl+c")
	assert.Contains(t, km.Quit.Keys(), "esc")
	assert.Equal(t, []string{"enter"}, km.Ask.Keys())
	assert.Equal(t, "ask", km.Ask.Help().Desc)
}

func TestKeyMap_NoPrintableKeys(t *testing.T) {
	km := DefaultKeyMap()
	bindings := append(km.ShortHelp(), km.AnswerHelp()...)

	for _, b := range bindings {
		for _, k := range b.Keys() {
			assert.Greater(t, len(k), 1, "binding %q would swallow typed text", k)
		}
	}
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name string
		key  string
		want bool
	}{
		{"enter asks", "enter", true},
		{"letter does not ask", "a", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.key, km.Ask))
		})
	}
}

func TestKeyMap_Help(t *testing.T) {
	km := DefaultKeyMap()

	assert.Len(t, km.ShortHelp(), 4)
	assert.Len(t, km.AnswerHelp(), 4)
}
