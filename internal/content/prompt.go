package content

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an experienced school teacher writing study material for students following the national curriculum. Be accurate, clear and age-appropriate for the stated class.`

func chapterHeader(b *strings.Builder, req Request) {
	fmt.Fprintf(b, "Class: %d\n", req.ClassLevel)
	fmt.Fprintf(b, "Subject: %s\n", req.SubjectName)
	fmt.Fprintf(b, "Chapter: %s\n", req.ChapterTitle)
}

func buildSyllabusMessage(req Request) string {
	var b strings.Builder
	chapterHeader(&b, req)
	b.WriteString(`
Instructions:
List the topics of this chapter in the order they should be taught.
1. The first topic must be "Introduction".
2. Use short titles (2-6 words).
3. Return 4-8 topics. Do not number them.`)
	return b.String()
}

func buildExplanationMessage(req Request, topic string) string {
	var b strings.Builder
	chapterHeader(&b, req)
	fmt.Fprintf(&b, "Topic: %s\n", topic)
	b.WriteString(`
Instructions:
Explain this topic for a student reading it for the first time.
1. Write markdown with short sections, bullet lists and one worked example where it fits.
2. Write formulas in LaTeX between $ signs.
3. Keep it under 600 words.
4. Cite 1-3 reliable sources (textbooks, encyclopedias, government education sites) with their URLs.`)
	return b.String()
}

func buildQuizMessage(req Request, n int) string {
	var b strings.Builder
	chapterHeader(&b, req)
	fmt.Fprintf(&b, `
Instructions:
Write %d multiple-choice questions that test understanding of the whole chapter.
1. Each question has exactly 4 options.
2. correctAnswer is the 0-based index of the single correct option.
3. Give a one or two sentence explanation of the correct answer.
4. Mix recall and application questions.`, n)
	return b.String()
}

func buildGlossaryMessage(req Request, n int) string {
	var b strings.Builder
	chapterHeader(&b, req)
	fmt.Fprintf(&b, `
Instructions:
List the %d most important terms from this chapter with a one sentence definition each.
Order them as they first appear in the chapter.`, n)
	return b.String()
}
