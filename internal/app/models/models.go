package models

// Actor is the user on whose behalf a request runs. It is passed explicitly to every service
// and workflow call.
type Actor struct {
	ID        int64
	Anonymous bool
}

// AnonymousActor returns the actor used for unauthenticated requests
func AnonymousActor() Actor {
	return Actor{Anonymous: true}
}

// UserActor returns an authenticated actor for the given user id
func UserActor(userID int64) Actor {
	return Actor{ID: userID}
}

// Is reports whether the actor is the authenticated user with the given id
func (a Actor) Is(userID *int64) bool {
	return !a.Anonymous && userID != nil && *userID == a.ID
}

// Ref returns the user reference to store for this actor, nil when anonymous
func (a Actor) Ref() *int64 {
	if a.Anonymous {
		return nil
	}
	id := a.ID
	return &id
}
