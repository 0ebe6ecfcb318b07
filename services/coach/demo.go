package coach

import "github.com/davidcogill1011-code/ai-tutor-turnkey/models"

// Canned replies returned when no completion-service credential is
// configured. Demo mode is a designed degradation path, not a failure:
// the server stays usable with zero external dependency, and each
// canned reply honors the same section contract the real model is
// instructed to follow, so the parser and ledger work against it.

const demoPracticeReply = `## Practice set
1) Solve: 2x + 5 = 17
   Hint: Undo +5 first.
   Answer check: x = 6

2) Solve: 3x - 4 = 11
   Hint: Add 4 to both sides.
   Answer check: x = 5

3) Solve: x/4 + 2 = 7
   Hint: Subtract 2 first.
   Answer check: x = 20

4) Solve: 5(x - 1) = 20
   Hint: Divide by 5 first.
   Answer check: x = 5

5) Solve: 2x + 3x = 25
   Hint: Combine like terms.
   Answer check: x = 5

6) Challenge: 4(x + 2) - 3 = 21
   Hint: Add 3, then divide by 4.
   Answer check: x = 4

## How to use this
Try #1-#3 first. If you get stuck, write your next step and ask the tutor to check it.

## Skills
Linear equations, Inverse operations, Combining like terms`

const demoGradeReply = `## Rubric check
Checked the pasted work for correct inverse operations and order of steps.

## First error
Demo mode is on (no API key set), so no real grading happened. The sample first error: subtracting 5 from only one side of the equation.

## One fix
Subtract 5 from both sides before dividing.

## Next step question
What operation undoes the multiplication by 2?

## Skills
Linear equations, Inverse operations, Checking solutions`

const demoSessionReply = `## Feedback
` + GlyphCorrect + ` Demo mode is on (no API key set).

## Roadmap
1) Identify what the question asks for
2) Undo +/- operations
3) Undo x/divide operations
4) Check the result in the original problem

## Next step
What is the variable we are trying to find?

## Check
Answer with your step.

## Skills
Problem interpretation, Linear equations, Inverse operations`

const demoNormalReply = `## Goal
Learn the method step-by-step (teach-not-solve).

## Roadmap
1) Identify the target (what you are solving for)
2) Undo +/- first
3) Undo x/divide next
4) Check by substituting back

## Step 1 (Your turn)
What is the problem asking you to find?

## Hint
Look for the letter (like x). That is usually what we solve for.

## Check Understanding
What does x represent in this problem?

## Skills
Problem interpretation, Linear equations, Inverse operations`

// DemoReply returns the canned reply for a task/mode combination.
func DemoReply(task, mode string) string {
	switch task {
	case models.TaskPractice:
		return demoPracticeReply
	case models.TaskGrade:
		return demoGradeReply
	}

	if mode == models.ModeSession {
		return demoSessionReply
	}
	return demoNormalReply
}
