package chat

// resolveRoute applies the deterministic override rules to a raw routing
// label. A non-empty canned message means the turn is answered with that
// exact text and no generation collaborator may be called.
//
// For edit_blog the missing-draft check runs before the blank-input check,
// so "no draft" wins when both conditions fail.
func resolveRoute(raw Route, blankInput, hasDraft bool) (Route, string) {
	switch raw {
	case RouteWriteBlog:
		if blankInput {
			return RouteAnswer, msgProvideTopic
		}
	case RouteEditBlog:
		if !hasDraft {
			return RouteAnswer, msgNoDraft
		}
		if blankInput {
			return RouteAnswer, msgProvideEdits
		}
	}

	return raw, ""
}
