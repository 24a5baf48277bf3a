// Package domain contains the core entities of the tutor service: the
// preference set selected for one request, quiz questions parsed from model
// replies, uploaded documents, generated flashcards with their review
// scheduling state, and users. Entities validate themselves and carry no
// persistence concerns.
package domain
