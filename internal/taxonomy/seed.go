package taxonomy

// Seed tables for the JAMB Mathematics syllabus. Tuning the taxonomy means
// editing these tables; MapToCanonical never needs to change.

// seedWeights are relative exam weights per canonical topic.
var seedWeights = map[Canonical]float64{
	NumberAndNumeration:      0.25,
	Algebra:                  0.25,
	GeometryAndTrigonometry:  0.25,
	Calculus:                 0.10,
	StatisticsAndProbability: 0.15,
}

// seedPrerequisites lists the fine-grained prerequisite topics under each
// canonical topic.
var seedPrerequisites = map[Canonical][]string{
	NumberAndNumeration: {
		"Number bases",
		"Fractions",
		"Decimals",
		"Approximations",
		"Percentages",
		"Simple interest",
		"Profit and loss",
		"Ratio and proportion",
		"Indices",
		"Logarithms",
		"Surds",
		"Set theory",
		"Venn diagrams",
		"Number system",
		"Number theory",
	},
	Algebra: {
		"Polynomials",
		"Variations",
		"Inequalities",
		"Progressions",
		"Binary operations",
		"Matrices",
		"Change of subject",
		"Factor and remainder theorems",
		"Factorization",
		"Roots",
		"Simultaneous equations",
		"Graphs of polynomials",
		"Direct variation",
		"Inverse variation",
		"Joint variation",
		"Partial variation",
		"Linear inequalities",
		"Quadratic inequalities",
		"Arithmetic progressions",
		"Geometric progressions",
		"Equations",
		"Linear equations",
		"Quadratic equations",
	},
	GeometryAndTrigonometry: {
		"Properties of angles",
		"Properties of lines",
		"Polygons",
		"Circles",
		"Chords",
		"Geometric construction",
		"Perimeters",
		"Areas",
		"Surface areas",
		"Volumes",
		"Longitudes",
		"Latitudes",
		"Locus",
		"Midpoint",
		"Gradient",
		"Distance between points",
		"Equations of straight lines",
		"Trigonometrical ratios",
		"Angles of elevation",
		"Angles of depression",
		"Bearings",
		"Sine rule",
		"Cosine rule",
		"Coordinate geometry",
	},
	Calculus: {
		"Limit of a function",
		"Differentiation",
		"Integration",
		"Rates of change",
		"Maxima",
		"Minima",
		"Area under a curve",
		"Derivatives",
		"Integrals",
	},
	StatisticsAndProbability: {
		"Frequency distribution",
		"Histogram",
		"Bar chart",
		"Pie chart",
		"Mean",
		"Median",
		"Mode",
		"Cumulative frequency",
		"Range",
		"Mean deviation",
		"Variance",
		"Standard deviation",
		"Permutation",
		"Combination",
		"Experimental probability",
		"Addition of probabilities",
		"Multiplication of probabilities",
		"Probability",
	},
}

// seedKeywords backs the last-resort bucket match for names that resemble
// nothing in the prerequisite table.
var seedKeywords = map[Canonical][]string{
	NumberAndNumeration: {
		"number", "numeration", "fraction", "decimal", "percentage", "ratio", "set",
	},
	Algebra: {
		"algebra", "equation", "polynomial", "inequality", "progression",
	},
	GeometryAndTrigonometry: {
		"geometry", "trigonometry", "angle", "circle", "triangle", "coordinate",
	},
	Calculus: {
		"calculus", "differentiation", "integration", "derivative", "integral",
	},
	StatisticsAndProbability: {
		"statistics", "probability", "mean", "median", "mode", "permutation", "combination",
	},
}
