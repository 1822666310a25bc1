package entity

// Types is the fixed catalog served on /types, in declared order.
// "Psychich" is the published spelling; clients match on it.
var Types = []string{
	"Bug", "Dark", "Dragon", "Electric", "Fairy", "Fighting",
	"Fire", "Flying", "Ghost", "Grass", "Ground", "Ice",
	"Normal", "Poison", "Psychich", "Rock", "Steel", "Water",
}

const Greeting = "Hello, Pokemon"
