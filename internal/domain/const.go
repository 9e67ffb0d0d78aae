package domain

type ctxKey string

// RequesterIDCtxKey carries the authenticated user id on the request context.
const RequesterIDCtxKey ctxKey = "wb-requesterId"

// MaxSeats is the fixed ceiling on a webinar's seat count, enforced at the
// use-case layer independent of the current stored value.
const MaxSeats = 1000
