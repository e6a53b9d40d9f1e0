package web_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (ts *webTestServer) guess(value string) {
	ts.t.Helper()
	rr := ts.post("/check_guess", url.Values{"guess": {value}})
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "Expected redirect after guess")
	require.Equal(ts.t, "/guess_number", rr.Header().Get("Location"))
}

func TestGuessPageStartsRound(t *testing.T) {
	ts := newWebTestServer(t)
	ts.registerAndLogin("alice", "alice@example.com", "hunter2")

	// Intn(100) == 41 gives a target of 42
	ts.app.MockRandom.QueueIntn(41)

	rr := ts.get("/guess_number")
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assert.Contains(t, doc.Find("h1").Text(), "Guess the number")
	assert.Contains(t, doc.Find(".attempts").Text(), "Attempts: 0")
	form := doc.Find(`form[action="/check_guess"]`)
	require.Equal(t, 1, form.Length())
	assert.Equal(t, 1, form.Find(`input[name="guess"]`).Length())
}

func TestGuessTooLowAndTooHigh(t *testing.T) {
	ts := newWebTestServer(t)
	ts.registerAndLogin("alice", "alice@example.com", "hunter2")

	ts.app.MockRandom.QueueIntn(41)
	ts.get("/guess_number")

	ts.guess("10")
	doc := parseHTML(ts.get("/guess_number").Body)
	assert.Contains(t, flashMessage(doc), "Too low")
	assert.Contains(t, doc.Find(".attempts").Text(), "Attempts: 1")

	ts.guess("90")
	doc = parseHTML(ts.get("/guess_number").Body)
	assert.Contains(t, flashMessage(doc), "Too high")
	assert.Contains(t, doc.Find(".attempts").Text(), "Attempts: 2")
}

func TestGuessCorrectStartsNewRound(t *testing.T) {
	ts := newWebTestServer(t)
	ts.registerAndLogin("alice", "alice@example.com", "hunter2")

	ts.app.MockRandom.QueueIntn(41)
	ts.get("/guess_number")

	ts.guess("10")
	ts.guess("90")

	// The win immediately draws the next round's target
	ts.app.MockRandom.QueueIntn(76)
	ts.guess("42")

	doc := parseHTML(ts.get("/guess_number").Body)
	assert.Contains(t, flashMessage(doc), "Correct! You got it in 3 attempts")
	assert.Contains(t, doc.Find(".attempts").Text(), "Attempts: 0")
}

func TestGuessPageKeepsRoundAcrossVisits(t *testing.T) {
	ts := newWebTestServer(t)
	ts.registerAndLogin("alice", "alice@example.com", "hunter2")

	ts.app.MockRandom.QueueIntn(41)
	ts.get("/guess_number")
	ts.guess("10")

	// Revisiting the page must not redraw the target or reset attempts
	ts.app.MockRandom.QueueIntn(99)
	doc := parseHTML(ts.get("/guess_number").Body)
	assert.Contains(t, doc.Find(".attempts").Text(), "Attempts: 1")

	ts.guess("42")
	doc = parseHTML(ts.get("/guess_number").Body)
	assert.Contains(t, flashMessage(doc), "Correct! You got it in 2 attempts")
}

func TestGuessUnparseableInput(t *testing.T) {
	ts := newWebTestServer(t)
	ts.registerAndLogin("alice", "alice@example.com", "hunter2")

	ts.app.MockRandom.QueueIntn(41)
	ts.get("/guess_number")
	ts.guess("10")

	// A non-numeric guess does not consume an attempt; the notice still
	// reports the current count
	ts.guess("banana")
	doc := parseHTML(ts.get("/guess_number").Body)
	assert.Contains(t, flashMessage(doc), "whole number")
	assert.Contains(t, flashMessage(doc), "Attempts so far: 1")
	assert.Contains(t, doc.Find(".attempts").Text(), "Attempts: 1")
}

func TestGuessWithoutRound(t *testing.T) {
	ts := newWebTestServer(t)
	ts.registerAndLogin("alice", "alice@example.com", "hunter2")

	// POST straight to /check_guess without visiting the game page
	rr := ts.post("/check_guess", url.Values{"guess": {"42"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	require.Equal(t, "/guess_number", rr.Header().Get("Location"))

	doc := parseHTML(ts.followRedirect(rr).Body)
	assert.Contains(t, flashMessage(doc), "No round in progress")
}

func TestCheckGuessRequiresLogin(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.post("/check_guess", url.Values{"guess": {"42"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	require.Equal(t, "/login", rr.Header().Get("Location"))
}

func TestSessionsPlayIndependentRounds(t *testing.T) {
	ts := newWebTestServer(t)
	ts.registerAndLogin("alice", "alice@example.com", "hunter2")

	ts.app.MockRandom.QueueIntn(41)
	ts.get("/guess_number")
	ts.guess("10")

	// A second browser with its own cookies gets its own round
	aliceJar := ts.cookies
	ts.cookies = newCookieJar()
	ts.registerAndLogin("bob", "bob@example.com", "hunter2")

	ts.app.MockRandom.QueueIntn(10)
	doc := parseHTML(ts.get("/guess_number").Body)
	assert.Contains(t, doc.Find(".attempts").Text(), "Attempts: 0")

	ts.app.MockRandom.QueueIntn(50)
	ts.guess("11")
	doc = parseHTML(ts.get("/guess_number").Body)
	assert.Contains(t, flashMessage(doc), "Correct! You got it in 1 attempts")

	// Alice's round is untouched by bob's game
	ts.cookies = aliceJar
	doc = parseHTML(ts.get("/guess_number").Body)
	assert.Contains(t, doc.Find(".attempts").Text(), "Attempts: 1")
}
