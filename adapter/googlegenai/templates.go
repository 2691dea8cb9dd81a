package googlegenai

const answerTemplate = `
I will ask you a question and will provide some additional context information.
Assume the context information is factual and correct and do not consider any
other information outside of the context.

Context is a list of passages extracted from documents uploaded by the user.
Each passage is on a separate line.

If the question relates to the context, answer it using the context.
If the question does not relate to the context, simply return empty response.

Answer the question according to provided schema. Schema defines a text field
and a relevant_snippets field.

The text field is a string. Text field should contain full answer to the question.

The relevant_snippets field should contain list of relevant lines from the context
that were used to answer the question.

Question:
%s

Context:
%s
`
