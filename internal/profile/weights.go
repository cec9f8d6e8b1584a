package profile

// Archetype labels.
const (
	TacticalAttacker  = "Tactical Attacker"
	PositionalPlayer  = "Positional Player"
	EndgameSpecialist = "Endgame Specialist"
	BlitzSpeedster    = "Blitz Speedster"
	DefensivePlayer   = "Defensive Player"
	UnstablePlayer    = "Unstable Player"

	// Unknown is the sentinel profile for batches with no analyzable games.
	Unknown = "Unknown"
)

// Weights is one archetype's linear scoring row over the aggregate metric
// features. InverseMoveTime weighs 1/max(avg_move_time, 0.1).
type Weights struct {
	Tactical        float64
	Positional      float64
	Endgame         float64
	Defensive       float64
	BlunderRate     float64
	Variance        float64
	InverseMoveTime float64
}

// archetypeWeights is the fixed, domain-authored scoring table. The exact
// coefficients define the profiler's behavior; tests assert against them.
var archetypeWeights = map[string]Weights{
	TacticalAttacker:  {Tactical: 0.5, BlunderRate: 0.3, Defensive: -0.2},
	PositionalPlayer:  {Positional: 0.6, BlunderRate: -0.3, Defensive: 0.1},
	EndgameSpecialist: {Endgame: 0.7, BlunderRate: -0.3},
	BlitzSpeedster:    {InverseMoveTime: 0.6, BlunderRate: 0.4},
	DefensivePlayer:   {Defensive: 0.6, BlunderRate: -0.2, Positional: 0.2},
	UnstablePlayer:    {BlunderRate: 0.5, Variance: 0.5, Positional: -0.2},
}

// descriptions maps each primary archetype to its fixed summary sentence.
var descriptions = map[string]string{
	TacticalAttacker:  "You thrive in sharp tactical positions, often taking calculated risks to outmaneuver opponents. Your play is characterized by aggressive moves and complex calculations, though this sometimes leads to higher blunder rates in tense positions.",
	PositionalPlayer:  "Your strength lies in long-term strategic planning and gradual advantage building. You demonstrate excellent control of the board, focusing on piece coordination and pawn structure while maintaining a low blunder rate.",
	EndgameSpecialist: "You excel at converting advantages in the later stages of games. Your technical precision shines in simplified positions, and you demonstrate strong endgame technique with a methodical approach to winning won positions.",
	BlitzSpeedster:    "Your rapid decision-making and instinctive play make you a formidable opponent in faster time controls. You play a diverse range of openings and can create pressure through quick, purposeful moves.",
	DefensivePlayer:   "You show remarkable resilience and defensive resourcefulness. Your play is characterized by solid positional understanding, patience in difficult positions, and an ability to neutralize opponents' attacks.",
	UnstablePlayer:    "Your play shows significant variance between games. While capable of brilliant moves, consistency remains a challenge. Working on reducing blunders and building a more stable positional foundation would benefit your results.",
}
