package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateUsername(t *testing.T) {
	t.Parallel()

	pattern := `^(Silly|Goofy|Wacky|Zany|Dizzy|Bizarre|Funky|Quirky)(Panda|Unicorn|Dinosaur|Alien|Robot|Pirate|Ninja|Wizard)\d{1,2}$`
	for i := 0; i < 100; i++ {
		name := GenerateUsername()
		assert.Regexp(t, pattern, name)
		assert.LessOrEqual(t, len(name), maxPlayerNameLength)
	}
}

func TestRandomAvatar(t *testing.T) {
	t.Parallel()

	for i := 0; i < 100; i++ {
		assert.Regexp(t, `^avatar-(10|[1-9])\.svg$`, RandomAvatar())
	}
}
