// Package models defines the client-side data model of the card exchange:
// collection maps and their derived card rows, the user profile, and the
// records returned by the trade and messaging endpoints.
package models
