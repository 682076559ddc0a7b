// Package email sends transactional mail through Postmark, with a logging
// sender for development. The only messages the platform sends today are
// billing notices to salon owners.
package email
