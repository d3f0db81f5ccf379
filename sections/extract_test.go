package sections

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractHook(t *testing.T) {
	assert.Equal(t, "Primera frase.", ExtractHook("Primera frase. Segunda frase."))
	assert.Equal(t, "¿En serio?", ExtractHook("¿En serio? Pues sí."))

	// no terminator: first 100 characters
	long := strings.Repeat("palabra ", 30)
	assert.Equal(t, long[:100], ExtractHook(long))

	short := "sin terminador"
	assert.Equal(t, short, ExtractHook(short))
}

func TestExtractBody(t *testing.T) {
	// leading and trailing sentence dropped, middle rejoined
	got := ExtractBody("Uno. Dos. Tres. Cuatro.")
	assert.Equal(t, "Dos. Tres", got)

	// two or fewer sentences: script unmodified
	whole := "Uno. Dos."
	assert.Equal(t, whole, ExtractBody(whole))
	assert.Equal(t, "Uno.", ExtractBody("Uno."))
}

func TestExtractImpact(t *testing.T) {
	assert.Equal(t, "Tres", ExtractImpact("Uno. Dos. Tres. Cuatro."))
	assert.Equal(t, "Uno", ExtractImpact("Uno. Dos."))
	assert.Equal(t, "", ExtractImpact("Solo una frase."))
	assert.Equal(t, "", ExtractImpact(""))
}
