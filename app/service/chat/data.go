package chat

// Route is the routing label for one user turn.
type Route string

const (
	// RouteAnswer - reply directly to the user
	RouteAnswer Route = "answer"

	// RouteWriteBlog - run the blog pipeline on the turn's topic
	RouteWriteBlog Route = "write_blog"

	// RouteEditBlog - revise the current blog per the turn's instructions
	RouteEditBlog Route = "edit_blog"
)

// Greeting is the assistant's opening message for a fresh session.
const Greeting = "Hey, your writing companion is ready—what's the plan?"

const (
	msgProvideTopic = "Please provide a topic for the blog."
	msgNoDraft      = "There is no blog draft to edit yet. Please write one first, or provide the blog content."
	msgProvideEdits = "Please provide the edit instructions for the blog."

	msgBlogReady   = "Here is your blog!"
	msgBlogRevised = "Here is your edited blog!"
)

type routerResponse struct {
	Way string `json:"way"`
}

// Envelope is the per-turn result returned to the caller. ArtifactName is
// set only when a blog was drafted or revised this turn.
type Envelope struct {
	Response     string `json:"response"`
	ArtifactName string `json:"artifact,omitempty"`
}
