// Package storage provides persistent storage for the PantryChef bot.
// It uses BadgerDB as the embedded database; values are JSON-encoded
// under string keys prefixed per entity ("pantry:", "recipe:", ...).
package storage
