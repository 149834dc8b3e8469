package domain

var (
	MessageSuccessToggleLike     = "like toggled successfully"
	MessageSuccessToggleFavorite = "favorite toggled successfully"
	MessageSuccessRecordView     = "view recorded successfully"
	MessageSuccessGetStats       = "success get recipe stats"

	MessageFailedToggleLike     = "failed to toggle like"
	MessageFailedToggleFavorite = "failed to toggle favorite"
	MessageFailedRecordView     = "failed to record view"
	MessageFailedGetStats       = "failed to get recipe stats"
)

type (
	ToggleLikeResponse struct {
		Liked      bool  `json:"liked"`
		TotalLikes int64 `json:"total_likes"`
	}

	ToggleFavoriteResponse struct {
		Favorited      bool  `json:"favorited"`
		TotalFavorites int64 `json:"total_favorites"`
	}

	RecordViewResponse struct {
		CountedTowardPopularity bool `json:"counted_toward_popularity"`
	}

	RecipeStats struct {
		Likes        int64 `json:"likes"`
		Favorites    int64 `json:"favorites"`
		Views        int64 `json:"views"`
		CountedViews int64 `json:"counted_views"`
	}
)
