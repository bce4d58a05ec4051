package quiz

// Question ids, also the keys of the raw answer map
const (
	QuestionExperience  = "experience"
	QuestionWineTypes   = "wineTypes"
	QuestionDuration    = "duration"
	QuestionTravelStyle = "travelStyle"
	QuestionRegions     = "regions"
	QuestionActivities  = "activities"
)

// Option is one selectable answer
type Option struct {
	Value       string `json:"value"`
	Text        string `json:"text"`
	Description string `json:"description"`
}

// Question is a single quiz step
type Question struct {
	ID       string   `json:"id"`
	Prompt   string   `json:"question"`
	Multiple bool     `json:"multiple"`
	Options  []Option `json:"options"`
}

var questions = []Question{
	{
		ID:     QuestionExperience,
		Prompt: "How would you describe your wine experience?",
		Options: []Option{
			{"beginner", "New to wine - excited to learn!", "Perfect for accessible tastings and educational experiences"},
			{"intermediate", "I know what I like and want to explore more", "Ready for diverse tastings and some premium experiences"},
			{"expert", "Experienced - looking for unique discoveries", "Seeking rare varietals and boutique wineries"},
			{"professional", "Wine professional or serious collector", "Access to exclusive tastings and limited releases"},
		},
	},
	{
		ID:       QuestionWineTypes,
		Prompt:   "Which wine styles excite you most?",
		Multiple: true,
		Options: []Option{
			{"reds", "Bold reds (Cabernet, Syrah, Merlot)", "Full-bodied wines with rich flavors"},
			{"whites", "Crisp whites (Riesling, Chardonnay, Sauvignon Blanc)", "Fresh, aromatic, and food-friendly wines"},
			{"sparkling", "Sparkling wines and Champagne-style", "Bubbles for celebrations and special moments"},
			{"dessert", "Sweet and dessert wines", "Perfect endings to meals or standalone treats"},
			{"natural", "Natural and biodynamic wines", "Minimal intervention, terroir-focused wines"},
		},
	},
	{
		ID:     QuestionDuration,
		Prompt: "How long is your wine adventure?",
		Options: []Option{
			{"day", "Perfect day trip (1 day)", "2 tastings with lunch"},
			{"weekend", "Weekend getaway (2-3 days)", "4-6 wineries with dining and accommodation"},
			{"week", "Extended vacation (4-7 days)", "Comprehensive tour of multiple regions"},
			{"flexible", "I'm flexible with timing", "We'll suggest the ideal duration"},
		},
	},
	{
		ID:     QuestionTravelStyle,
		Prompt: "What's your preferred travel style?",
		Options: []Option{
			{"luxury", "Luxury experience with premium accommodations", "Five-star service and exclusive experiences"},
			{"boutique", "Boutique hotels and intimate experiences", "Charming, unique properties with personal touch"},
			{"adventure", "Road trip adventure with scenic stops", "Exploring hidden gems and scenic routes"},
			{"budget", "Great value while staying comfortable", "Quality experiences without breaking the bank"},
		},
	},
	{
		ID:       QuestionRegions,
		Prompt:   "Which Washington wine regions interest you?",
		Multiple: true,
		Options: []Option{
			{"columbia_valley", "Columbia Valley (diverse, largest region)", "Wide variety of wines and landscapes"},
			{"walla_walla", "Walla Walla Valley (historic, prestigious)", "Premium reds and charming town atmosphere"},
			{"yakima", "Yakima Valley (oldest region, diverse)", "Pioneer region with established wineries"},
			{"woodinville", "Woodinville (convenient from Seattle)", "Easy access with numerous tasting rooms"},
			{"surprise", "Surprise me with hidden gems!", "Let us choose the perfect regions for you"},
		},
	},
	{
		ID:       QuestionActivities,
		Prompt:   "Beyond wine tasting, what interests you?",
		Multiple: true,
		Options: []Option{
			{"dining", "Farm-to-table dining experiences", "Local cuisine paired with regional wines"},
			{"nature", "Hiking and outdoor activities", "Scenic trails and natural beauty"},
			{"culture", "Local art and cultural experiences", "Galleries, museums, and local artisans"},
			{"history", "Wine history and educational tours", "Learn about winemaking and regional heritage"},
			{"relaxation", "Spa and wellness experiences", "Unwind with therapeutic treatments"},
		},
	},
}

// Questions returns the quiz in presentation order
func Questions() []Question {
	out := make([]Question, len(questions))
	copy(out, questions)
	return out
}

// Lookup finds a question by id
func Lookup(id string) (Question, bool) {
	for _, q := range questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// HasOption reports whether value is one of the question's options
func (q Question) HasOption(value string) bool {
	for _, o := range q.Options {
		if o.Value == value {
			return true
		}
	}
	return false
}
