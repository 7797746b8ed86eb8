package models

// ExampleIdea is a canned idea the form offers as a starting point
type ExampleIdea struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}

var exampleIdeas = []ExampleIdea{
	{
		Category: "Code Generation",
		Text: "Write a Python script to scrape stock prices from Yahoo Finance using BeautifulSoup " +
			"and visualize the 30-day moving average with Matplotlib.",
	},
	{
		Category: "Creative Writing",
		Text: "Write a short sci-fi story about a robot who discovers it can dream, written in the style " +
			"of Philip K. Dick, focusing on themes of consciousness.",
	},
	{
		Category: "Data Analysis",
		Text: "Analyze the current trends in remote work adoption for 2024 and suggest 3 distinct HR " +
			"strategies to improve employee engagement.",
	},
	{
		Category: "Education",
		Text: "Explain the concept of quantum entanglement to a curious 12-year-old student using a simple " +
			"analogy involving magical dice.",
	},
}

// ExampleIdeas returns a copy of the canned example ideas
func ExampleIdeas() []ExampleIdea {
	out := make([]ExampleIdea, len(exampleIdeas))
	copy(out, exampleIdeas)
	return out
}
