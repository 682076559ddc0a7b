// Package webhooks receives billing provider callbacks. Paddle subscription
// events drive the tenant lifecycle: a lapsed subscription suspends the
// salon, a settled one brings it back.
package webhooks
