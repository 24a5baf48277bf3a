package generation

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"tutor-api/internal/domain"
)

// Model replies arrive as free text. Parsing tries strict JSON first (after
// stripping markdown code fences), then falls back to the labeled text
// format some models produce despite the JSON instruction. A reply matching
// neither shape yields ErrInvalidResponse; callers substitute default
// content rather than surfacing the raw reply.

var (
	questionHeaderRe = regexp.MustCompile(`(?mi)^\s*(?:\*\*)?(?:question\s+)?(\d+)[.):]`)
	optionRe         = regexp.MustCompile(`(?mi)^\s*([A-D])[.)]\s*(.+?)\s*$`)
	correctAnswerRe  = regexp.MustCompile(`(?mi)^\s*(?:\*\*)?correct\s+answer\s*(?:\*\*)?\s*:\s*(.+?)\s*$`)
	explanationRe    = regexp.MustCompile(`(?mi)^\s*(?:\*\*)?explanation\s*(?:\*\*)?[:\s]+(.+)$`)
	cardFieldRe      = regexp.MustCompile(`(?mi)^\s*(?:\*\*)?(topic|question|answer)\s*(?:\*\*)?:\s*(.+?)\s*$`)
)

type quizEnvelope struct {
	Quiz []quizItem `json:"quiz"`
}

type quizItem struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

type flashcardEnvelope struct {
	Flashcards []flashcardItem `json:"flashcards"`
}

type flashcardItem struct {
	Topic    string `json:"topic"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ParseQuiz reshapes a model reply into validated quiz questions. It accepts
// the JSON envelope requested by QuizPrompt or numbered question blocks with
// lettered options, a "Correct Answer:" line, and an "Explanation:" line.
func ParseQuiz(reply string) ([]domain.QuizQuestion, error) {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return nil, fmt.Errorf("%w: empty reply", ErrInvalidResponse)
	}

	if questions, ok := parseQuizJSON(reply); ok {
		return validateQuiz(questions)
	}
	questions, err := parseQuizText(reply)
	if err != nil {
		return nil, err
	}
	return validateQuiz(questions)
}

func parseQuizJSON(reply string) ([]domain.QuizQuestion, bool) {
	payload, ok := extractJSON(reply)
	if !ok {
		return nil, false
	}

	var env quizEnvelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil || len(env.Quiz) == 0 {
		// Some models emit the bare array without the envelope.
		var items []quizItem
		if err := json.Unmarshal([]byte(payload), &items); err != nil || len(items) == 0 {
			return nil, false
		}
		env.Quiz = items
	}

	questions := make([]domain.QuizQuestion, 0, len(env.Quiz))
	for _, item := range env.Quiz {
		questions = append(questions, domain.QuizQuestion{
			Question:      strings.TrimSpace(item.Question),
			Options:       trimAll(item.Options),
			CorrectAnswer: resolveAnswer(item.CorrectAnswer, item.Options),
			Explanation:   strings.TrimSpace(item.Explanation),
		})
	}
	return questions, true
}

// parseQuizText handles the labeled block format:
//
//	Question 1: ...
//	A) ...
//	B) ...
//	C) ...
//	D) ...
//	Correct Answer: B
//	Explanation: ...
func parseQuizText(reply string) ([]domain.QuizQuestion, error) {
	headers := questionHeaderRe.FindAllStringIndex(reply, -1)
	if len(headers) == 0 {
		return nil, fmt.Errorf("%w: no question blocks found", ErrInvalidResponse)
	}

	questions := make([]domain.QuizQuestion, 0, len(headers))
	for i, loc := range headers {
		end := len(reply)
		if i+1 < len(headers) {
			end = headers[i+1][0]
		}
		block := reply[loc[0]:end]

		q, err := parseQuizBlock(block)
		if err != nil {
			return nil, fmt.Errorf("question block %d: %w", i+1, err)
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func parseQuizBlock(block string) (domain.QuizQuestion, error) {
	var q domain.QuizQuestion

	// Question text runs from after the header to the first option line.
	header := questionHeaderRe.FindStringIndex(block)
	body := block[header[1]:]
	if firstOpt := optionRe.FindStringIndex(body); firstOpt != nil {
		q.Question = strings.TrimSpace(body[:firstOpt[0]])
	} else {
		return q, fmt.Errorf("%w: no answer options found", ErrInvalidResponse)
	}

	optsByLetter := make(map[string]string, domain.QuizOptionCount)
	for _, m := range optionRe.FindAllStringSubmatch(body, -1) {
		letter := strings.ToUpper(m[1])
		if _, seen := optsByLetter[letter]; !seen {
			optsByLetter[letter] = strings.TrimSpace(m[2])
		}
	}
	for _, letter := range []string{"A", "B", "C", "D"} {
		opt, ok := optsByLetter[letter]
		if !ok {
			return q, fmt.Errorf("%w: missing option %s", ErrInvalidResponse, letter)
		}
		q.Options = append(q.Options, opt)
	}

	answer := correctAnswerRe.FindStringSubmatch(body)
	if answer == nil {
		return q, fmt.Errorf("%w: missing correct answer line", ErrInvalidResponse)
	}
	q.CorrectAnswer = resolveAnswer(strings.Trim(answer[1], "* "), q.Options)

	if expl := explanationRe.FindStringSubmatch(body); expl != nil {
		q.Explanation = strings.TrimSpace(expl[1])
	}
	return q, nil
}

// ParseFlashcards reshapes a model reply into flashcard fields. It accepts
// the JSON envelope requested by FlashcardPrompt or repeated
// Topic:/Question:/Answer: blocks.
func ParseFlashcards(reply string) ([]FlashcardFields, error) {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return nil, fmt.Errorf("%w: empty reply", ErrInvalidResponse)
	}

	if cards, ok := parseFlashcardsJSON(reply); ok {
		return cards, nil
	}
	return parseFlashcardsText(reply)
}

// FlashcardFields holds one parsed card before it is bound to a user and
// document as a domain.Card.
type FlashcardFields struct {
	Topic    string
	Question string
	Answer   string
}

func parseFlashcardsJSON(reply string) ([]FlashcardFields, bool) {
	payload, ok := extractJSON(reply)
	if !ok {
		return nil, false
	}

	var env flashcardEnvelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil || len(env.Flashcards) == 0 {
		var items []flashcardItem
		if err := json.Unmarshal([]byte(payload), &items); err != nil || len(items) == 0 {
			return nil, false
		}
		env.Flashcards = items
	}

	cards := make([]FlashcardFields, 0, len(env.Flashcards))
	for _, item := range env.Flashcards {
		card := FlashcardFields{
			Topic:    strings.TrimSpace(item.Topic),
			Question: strings.TrimSpace(item.Question),
			Answer:   strings.TrimSpace(item.Answer),
		}
		if card.Question == "" || card.Answer == "" {
			continue
		}
		cards = append(cards, card)
	}
	return cards, len(cards) > 0
}

func parseFlashcardsText(reply string) ([]FlashcardFields, error) {
	var cards []FlashcardFields
	var current FlashcardFields

	flush := func() {
		if current.Question != "" && current.Answer != "" {
			cards = append(cards, current)
		}
		current = FlashcardFields{}
	}

	for _, m := range cardFieldRe.FindAllStringSubmatch(reply, -1) {
		value := strings.TrimSpace(m[2])
		switch strings.ToLower(m[1]) {
		case "topic":
			flush()
			current.Topic = value
		case "question":
			if current.Question != "" {
				flush()
			}
			current.Question = value
		case "answer":
			current.Answer = value
		}
	}
	flush()

	if len(cards) == 0 {
		return nil, fmt.Errorf("%w: no flashcard blocks found", ErrInvalidResponse)
	}
	return cards, nil
}

// extractJSON locates the JSON document inside a reply, stripping markdown
// code fences and any prose before the first brace or bracket.
func extractJSON(reply string) (string, bool) {
	reply = strings.TrimSpace(reply)

	if idx := strings.Index(reply, "```"); idx >= 0 {
		rest := reply[idx+3:]
		rest = strings.TrimPrefix(rest, "json")
		rest = strings.TrimPrefix(rest, "JSON")
		if end := strings.Index(rest, "```"); end >= 0 {
			reply = strings.TrimSpace(rest[:end])
		}
	}

	start := strings.IndexAny(reply, "{[")
	if start < 0 {
		return "", false
	}
	closing := byte('}')
	if reply[start] == '[' {
		closing = ']'
	}
	end := strings.LastIndexByte(reply, closing)
	if end <= start {
		return "", false
	}
	payload := reply[start : end+1]
	if !json.Valid([]byte(payload)) {
		return "", false
	}
	return payload, true
}

// resolveAnswer maps a correct-answer value onto one of the options. Accepts
// the full option text, a bare letter, or a "B) text" prefix form.
func resolveAnswer(answer string, options []string) string {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return ""
	}

	for _, opt := range options {
		if strings.EqualFold(strings.TrimSpace(opt), answer) {
			return strings.TrimSpace(opt)
		}
	}

	// Bare letter or "B)" / "B." prefix.
	letter := strings.ToUpper(strings.TrimRight(answer, ".) "))
	if len(letter) == 1 && letter[0] >= 'A' && letter[0] <= 'D' {
		if idx := int(letter[0] - 'A'); idx < len(options) {
			return strings.TrimSpace(options[idx])
		}
	}

	// "B) full text" form: strip the prefix and match again.
	if m := optionRe.FindStringSubmatch(answer); m != nil {
		for _, opt := range options {
			if strings.EqualFold(strings.TrimSpace(opt), strings.TrimSpace(m[2])) {
				return strings.TrimSpace(opt)
			}
		}
	}
	return answer
}

func validateQuiz(questions []domain.QuizQuestion) ([]domain.QuizQuestion, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: reply contained no questions", ErrInvalidResponse)
	}
	for i, q := range questions {
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("%w: question %d: %v", ErrInvalidResponse, i+1, err)
		}
	}
	return questions, nil
}

func trimAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.TrimSpace(v)
	}
	return out
}
