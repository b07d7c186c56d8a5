package game

import (
	"fmt"
	"math/rand"
)

var usernameAdjectives = []string{"Silly", "Goofy", "Wacky", "Zany", "Dizzy", "Bizarre", "Funky", "Quirky"}
var usernameNouns = []string{"Panda", "Unicorn", "Dinosaur", "Alien", "Robot", "Pirate", "Ninja", "Wizard"}

const avatarCount = 10

func GenerateUsername() string {
	adjective := usernameAdjectives[rand.Intn(len(usernameAdjectives))]
	noun := usernameNouns[rand.Intn(len(usernameNouns))]
	return fmt.Sprintf("%s%s%d", adjective, noun, rand.Intn(100))
}

func RandomAvatar() string {
	return fmt.Sprintf("avatar-%d.svg", rand.Intn(avatarCount)+1)
}
