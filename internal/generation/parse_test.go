package generation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quizJSONReply = `{"quiz":[
	{"question":"What is H2O?","options":["Water","Salt","Sugar","Iron"],"correct_answer":"Water","explanation":"H2O is the chemical formula for water."},
	{"question":"Which planet is closest to the sun?","options":["Venus","Mercury","Earth","Mars"],"correct_answer":"Mercury","explanation":"Mercury orbits closest."}
]}`

func TestParseQuiz(t *testing.T) {
	t.Parallel()

	t.Run("parses the JSON envelope", func(t *testing.T) {
		t.Parallel()

		questions, err := ParseQuiz(quizJSONReply)
		require.NoError(t, err)
		require.Len(t, questions, 2)
		assert.Equal(t, "What is H2O?", questions[0].Question)
		assert.Equal(t, "Water", questions[0].CorrectAnswer)
		assert.Len(t, questions[0].Options, 4)
	})

	t.Run("parses JSON wrapped in a markdown fence", func(t *testing.T) {
		t.Parallel()

		reply := "Here is your quiz:\n```json\n" + quizJSONReply + "\n```"
		questions, err := ParseQuiz(reply)
		require.NoError(t, err)
		assert.Len(t, questions, 2)
	})

	t.Run("parses a bare JSON array", func(t *testing.T) {
		t.Parallel()

		reply := `[{"question":"What is H2O?","options":["Water","Salt","Sugar","Iron"],"correct_answer":"Water"}]`
		questions, err := ParseQuiz(reply)
		require.NoError(t, err)
		assert.Len(t, questions, 1)
	})

	t.Run("resolves a letter correct_answer to the option text", func(t *testing.T) {
		t.Parallel()

		reply := `{"quiz":[{"question":"What is H2O?","options":["Water","Salt","Sugar","Iron"],"correct_answer":"A"}]}`
		questions, err := ParseQuiz(reply)
		require.NoError(t, err)
		assert.Equal(t, "Water", questions[0].CorrectAnswer)
	})

	t.Run("parses labeled text blocks, one question per block", func(t *testing.T) {
		t.Parallel()

		const n = 3
		var reply string
		for i := 1; i <= n; i++ {
			reply += fmt.Sprintf(`Question %d: What is item %d?
A) First
B) Second
C) Third
D) Fourth
Correct Answer: B
Explanation: Because it is the second option.

`, i, i)
		}

		questions, err := ParseQuiz(reply)
		require.NoError(t, err)
		require.Len(t, questions, n)
		for _, q := range questions {
			assert.Equal(t, "Second", q.CorrectAnswer)
			assert.Equal(t, "Because it is the second option.", q.Explanation)
		}
	})

	t.Run("accepts markdown-decorated text blocks", func(t *testing.T) {
		t.Parallel()

		reply := `**1.** What is H2O?
A. Water
B. Salt
C. Sugar
D. Iron
**Correct Answer:** Water
**Explanation:** Chemistry basics.`

		questions, err := ParseQuiz(reply)
		require.NoError(t, err)
		require.Len(t, questions, 1)
		assert.Equal(t, "Water", questions[0].CorrectAnswer)
	})

	t.Run("reply without delimiters yields ErrInvalidResponse", func(t *testing.T) {
		t.Parallel()

		_, err := ParseQuiz("I'm sorry, I can't produce a quiz right now.")
		assert.ErrorIs(t, err, ErrInvalidResponse)
	})

	t.Run("missing option yields ErrInvalidResponse", func(t *testing.T) {
		t.Parallel()

		reply := `Question 1: What is H2O?
A) Water
B) Salt
C) Sugar
Correct Answer: A`

		_, err := ParseQuiz(reply)
		assert.ErrorIs(t, err, ErrInvalidResponse)
	})

	t.Run("missing correct answer line yields ErrInvalidResponse", func(t *testing.T) {
		t.Parallel()

		reply := `Question 1: What is H2O?
A) Water
B) Salt
C) Sugar
D) Iron`

		_, err := ParseQuiz(reply)
		assert.ErrorIs(t, err, ErrInvalidResponse)
	})

	t.Run("empty reply yields ErrInvalidResponse", func(t *testing.T) {
		t.Parallel()

		_, err := ParseQuiz("   ")
		assert.ErrorIs(t, err, ErrInvalidResponse)
	})
}

func TestParseFlashcards(t *testing.T) {
	t.Parallel()

	t.Run("parses the JSON envelope", func(t *testing.T) {
		t.Parallel()

		reply := `{"flashcards":[
			{"topic":"Cells","question":"What is the basic unit of life?","answer":"The cell"},
			{"topic":"Cells","question":"What organelle produces ATP?","answer":"The mitochondrion"}
		]}`

		cards, err := ParseFlashcards(reply)
		require.NoError(t, err)
		require.Len(t, cards, 2)
		assert.Equal(t, "Cells", cards[0].Topic)
		assert.Equal(t, "The cell", cards[0].Answer)
	})

	t.Run("skips JSON cards missing a question or answer", func(t *testing.T) {
		t.Parallel()

		reply := `{"flashcards":[
			{"topic":"Cells","question":"What is the basic unit of life?","answer":"The cell"},
			{"topic":"Cells","question":"","answer":"Orphaned answer"}
		]}`

		cards, err := ParseFlashcards(reply)
		require.NoError(t, err)
		assert.Len(t, cards, 1)
	})

	t.Run("parses labeled text blocks", func(t *testing.T) {
		t.Parallel()

		reply := `Topic: Photosynthesis
Question: What gas do plants absorb?
Answer: Carbon dioxide

Topic: Photosynthesis
Question: What pigment captures light?
Answer: Chlorophyll`

		cards, err := ParseFlashcards(reply)
		require.NoError(t, err)
		require.Len(t, cards, 2)
		assert.Equal(t, "Carbon dioxide", cards[0].Answer)
		assert.Equal(t, "Chlorophyll", cards[1].Answer)
	})

	t.Run("reply without card fields yields ErrInvalidResponse", func(t *testing.T) {
		t.Parallel()

		_, err := ParseFlashcards("The document was very interesting.")
		assert.ErrorIs(t, err, ErrInvalidResponse)
	})
}

func TestResolveAnswer(t *testing.T) {
	t.Parallel()

	options := []string{"Water", "Salt", "Sugar", "Iron"}

	tests := []struct {
		name   string
		answer string
		want   string
	}{
		{"full option text", "Water", "Water"},
		{"case-insensitive match", "water", "Water"},
		{"bare letter", "B", "Salt"},
		{"letter with parenthesis", "C)", "Sugar"},
		{"letter-prefixed text", "D) Iron", "Iron"},
		{"unresolvable value passes through", "Helium", "Helium"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, resolveAnswer(tc.answer, options))
		})
	}
}
