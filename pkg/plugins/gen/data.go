package gen

// Sample data pools for the personal/business actions. Small on purpose:
// these exist to make generated fixtures look plausible, not to be a full
// faker library.

var firstNames = []string{
	"John", "Jane", "Bob", "Alice", "Charlie", "Diana", "Edward", "Fiona",
	"Greta", "Henrik", "Ingrid", "Jonas",
}

var lastNames = []string{
	"Smith", "Doe", "Johnson", "Williams", "Brown", "Davis", "Miller",
	"Wilson", "Schmidt", "Keller", "Berg", "Lind",
}

var emailDomains = []string{
	"example.com", "example.org", "test.com", "mock.io", "demo.org",
}

var words = []string{
	"alpha", "beta", "gamma", "delta", "epsilon", "zeta", "theta",
	"lambda", "sigma", "omega",
}

var companies = []string{
	"Acme Corp", "Globex Inc", "Initech", "Umbrella Corp",
	"Stark Industries", "Wayne Enterprises", "Cyberdyne Systems",
	"Tyrell Corp",
}
