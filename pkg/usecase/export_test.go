package usecase

// ApologyReply exposes the degraded chat reply for tests
const ApologyReply = apologyReply
