// Package shoplist turns stored recipes into a shopping list.
//
// Preview fetches recipes and consolidates their lines without touching the
// grocery list. Save persists the consolidated items and records the recipes
// as listed, optionally replacing whatever is still pending, and carries over
// the aisle section of items the user has already filed.
package shoplist
