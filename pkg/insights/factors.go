package insights

// FactorName is the name of a summarized profile attribute.
type FactorName string

// Percentile is a percentile of the followers distribution.
type Percentile string

const (
	followersFactor   FactorName = "Followers"
	followingFactor   FactorName = "Following"
	publicReposFactor FactorName = "Public repositories"
	publicGistsFactor FactorName = "Public gists"
	accountAgeFactor  FactorName = "Account age (days)"
)

var (
	// factors is the order in which factors are rendered.
	factors = []FactorName{
		followersFactor,
		followingFactor,
		publicReposFactor,
		publicGistsFactor,
		accountAgeFactor,
	}

	percentiles = []Percentile{
		"25",
		"50",
		"75",
		"90",
		"99",
	}
)

// minPercentileRows is the amount of rows needed to compute percentiles.
const minPercentileRows = 20
