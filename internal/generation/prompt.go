package generation

import (
	"fmt"
	"strings"

	"tutor-api/internal/domain"
)

// System role strings sent alongside each prompt kind.
const (
	ExplanationSystem = "You are a patient, encouraging tutor who adapts explanations to each learner's level, style, and language."
	QuizSystem        = "You are an examiner who writes accurate multiple-choice questions and always responds in the exact format requested."
	SummarySystem     = "You are a study assistant who distills documents into clear, structured summaries for learners."
	FlashcardSystem   = "You are an expert educator who designs atomic, unambiguous flashcards for active recall."
	DiscussionSystem  = "You are a study assistant who answers questions strictly from the provided document content and says so honestly when the document does not cover the question."
)

// maxDocumentPromptChars caps how much extracted document text one prompt may
// carry. Content beyond the cap is truncated with a marker so the model knows
// the document continues.
const maxDocumentPromptChars = 24000

// ExplanationPrompt builds the tutoring instruction for a question asked with
// the given preference set. Every supplied preference field appears verbatim
// in the returned string.
func ExplanationPrompt(prefs domain.PreferenceSet, question string) (string, error) {
	if err := prefs.Validate(); err != nil {
		return "", err
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrEmptyPrompt
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are tutoring a student in %s at the %s level.\n", prefs.Subject, prefs.Level)
	fmt.Fprintf(&b, "The student prefers a %s learning style and wants the answer in %s.\n", prefs.LearningStyle, prefs.Language)
	if bg := strings.TrimSpace(prefs.Background); bg != "" {
		fmt.Fprintf(&b, "Their background knowledge is: %s.\n", bg)
	}
	b.WriteString("\nExplain the following clearly and step by step, using short paragraphs and concrete examples suited to the learning style above:\n\n")
	b.WriteString(question)
	return b.String(), nil
}

// QuizPrompt builds the instruction for generating numQuestions
// multiple-choice items. The reply is requested as strict JSON; ParseQuiz
// also accepts the numbered-block text format for models that ignore the
// JSON instruction.
func QuizPrompt(prefs domain.PreferenceSet, numQuestions int) (string, error) {
	if err := prefs.ValidateForQuiz(); err != nil {
		return "", err
	}
	if numQuestions < 1 {
		numQuestions = 1
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate a quiz of exactly %d multiple-choice questions on %s at the %s level.\n",
		numQuestions, prefs.Subject, prefs.Level)
	if lang := strings.TrimSpace(prefs.Language); lang != "" {
		fmt.Fprintf(&b, "Write all questions and answers in %s.\n", lang)
	}
	b.WriteString(`
Respond with strict JSON in this shape and nothing else:
{"quiz":[{"question":"","options":["","","",""],"correct_answer":"","explanation":""}]}

Rules:
- Each question has exactly four options.
- correct_answer is the full text of one of the options, not a letter.
- explanation briefly states why the correct answer is right.
- The content must be accurate and appropriate for the stated level.`)
	return b.String(), nil
}

// SummaryPrompt builds the instruction for summarizing extracted document
// text.
func SummaryPrompt(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", ErrEmptyPrompt
	}

	var b strings.Builder
	b.WriteString("Summarize the following document for a student preparing to study it.\n")
	b.WriteString("Cover the main topics, key definitions, and important takeaways in short sections with headings.\n\n")
	b.WriteString("Document content:\n")
	b.WriteString(limitContent(content, maxDocumentPromptChars))
	return b.String(), nil
}

// FlashcardPrompt builds the instruction for generating flashcards from
// extracted document text.
func FlashcardPrompt(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", ErrEmptyPrompt
	}

	var b strings.Builder
	b.WriteString(`Create flashcards from the document below.

Respond with strict JSON in this shape and nothing else:
{"flashcards":[{"topic":"","question":"","answer":""}]}

Rules:
- Produce between 8 and 15 cards covering the most important concepts.
- Each card is atomic and unambiguous, testing one fact or idea.
- topic names the concept the card belongs to.
- Use Markdown sparingly in answers (only for essential formatting).

Document content:
`)
	b.WriteString(limitContent(content, maxDocumentPromptChars))
	return b.String(), nil
}

// DiscussionPrompt builds the instruction for answering a question grounded
// in a stored document. The summary gives the model a compact overview; the
// content is the authoritative source.
func DiscussionPrompt(content, summary, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrEmptyPrompt
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return "", ErrEmptyPrompt
	}

	var b strings.Builder
	b.WriteString("Answer the student's question using ONLY the document below.\n")
	b.WriteString("If the document does not contain the answer, say so instead of guessing.\n\n")
	if summary = strings.TrimSpace(summary); summary != "" {
		b.WriteString("Document summary:\n")
		b.WriteString(limitContent(summary, 2000))
		b.WriteString("\n\n")
	}
	b.WriteString("Document content:\n")
	b.WriteString(limitContent(content, maxDocumentPromptChars))
	b.WriteString("\n\nQuestion: ")
	b.WriteString(question)
	return b.String(), nil
}

// limitContent truncates content to maxLen characters, appending a marker so
// the model knows the text was cut.
func limitContent(content string, maxLen int) string {
	if len(content) <= maxLen {
		return content
	}
	return content[:maxLen] + "\n[... truncated ...]"
}
