package review

// OwnerScope identifies a review together with the principal that must own
// it. Every mutation statement built from it requires both to match.
type OwnerScope struct {
	ReviewID string
	OwnerID  string
}

const reviewColumns = "id, book_id, user_id, review_text, rating, created_at, updated_at"

// GuardedUpdate returns the owner-scoped UPDATE for the given changes.
func GuardedUpdate(scope OwnerScope, c Changes) (string, []any) {
	const query = `
		UPDATE reviews
		SET review_text = COALESCE($3, review_text),
		    rating = COALESCE($4, rating),
		    updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + reviewColumns
	return query, []any{scope.ReviewID, scope.OwnerID, c.ReviewText, c.Rating}
}

// GuardedDelete returns the owner-scoped DELETE.
func GuardedDelete(scope OwnerScope) (string, []any) {
	const query = `DELETE FROM reviews WHERE id = $1 AND user_id = $2`
	return query, []any{scope.ReviewID, scope.OwnerID}
}
