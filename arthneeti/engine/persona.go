package engine

// Persona archetypes assigned at game over.
const (
	PersonaGuru     = "The Financial Guru"
	PersonaMiser    = "The Miser"
	PersonaCarefree = "The Happy-Go-Lucky"
	PersonaBuffett  = "The Warren Buffett"
	PersonaBalanced = "The Balanced Spender"
	PersonaFOMO     = "The FOMO Victim"
)

// GeneratePersona maps final stats to an archetype. Pure function,
// first matching rule wins.
func GeneratePersona(wealth int64, happiness, literacy int) string {
	switch {
	case wealth > 100000 && happiness > 80:
		return PersonaGuru
	case wealth > 100000 && happiness < 40:
		return PersonaMiser
	case wealth < 10000 && happiness > 80:
		return PersonaCarefree
	case literacy >= 80:
		return PersonaBuffett
	case literacy >= 50:
		return PersonaBalanced
	default:
		return PersonaFOMO
	}
}
