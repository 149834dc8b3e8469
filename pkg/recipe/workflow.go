package recipe

import (
	"recipehub/domain"
	"recipehub/entities"
)

// actorClass narrows who may fire a workflow event. The checks events are
// fired by the automated content checker, which authenticates as admin.
type actorClass int

const (
	actorOwner actorClass = iota
	actorAdmin
	actorOwnerOrAdmin
)

type workflowTransition struct {
	From      string
	To        string
	Actor     actorClass
	ClearNote bool
}

// workflowTransitions is the closed transition table of the publication
// lifecycle. Rejection and failed checks return to draft with the reason
// kept in review_note rather than introducing a fifth stored status.
var workflowTransitions = map[string]workflowTransition{
	domain.EventSubmit: {
		From:      entities.RecipeStatusDraft,
		To:        entities.RecipeStatusProcessing,
		Actor:     actorOwner,
		ClearNote: true,
	},
	domain.EventChecksPassed: {
		From:  entities.RecipeStatusProcessing,
		To:    entities.RecipeStatusPendingReview,
		Actor: actorAdmin,
	},
	domain.EventChecksFailed: {
		From:  entities.RecipeStatusProcessing,
		To:    entities.RecipeStatusDraft,
		Actor: actorAdmin,
	},
	domain.EventApprove: {
		From:      entities.RecipeStatusPendingReview,
		To:        entities.RecipeStatusPublished,
		Actor:     actorAdmin,
		ClearNote: true,
	},
	domain.EventReject: {
		From:  entities.RecipeStatusPendingReview,
		To:    entities.RecipeStatusDraft,
		Actor: actorAdmin,
	},
	domain.EventUnpublish: {
		From:  entities.RecipeStatusPublished,
		To:    entities.RecipeStatusDraft,
		Actor: actorOwnerOrAdmin,
	},
}

func (t workflowTransition) authorized(actor domain.Actor, ownerID string) bool {
	switch t.Actor {
	case actorOwner:
		return actor.UserID == ownerID
	case actorAdmin:
		return actor.IsAdmin()
	case actorOwnerOrAdmin:
		return actor.CanModerate(ownerID)
	}
	return false
}
