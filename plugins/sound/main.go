// Package main provides a sound plugin for the rock paper scissors game.
// It synthesizes a short tone sequence per game event and pipes it as a WAV
// stream to the first audio player found on the system.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
)

// Request represents the input from the plugin executor.
type Request struct {
	Event       string `json:"event"`
	MatchID     string `json:"matchId"`
	Round       int    `json:"round"`
	Remaining   int    `json:"remaining,omitempty"`
	PlayerMove  string `json:"playerMove,omitempty"`
	AIMove      string `json:"aiMove,omitempty"`
	Outcome     string `json:"outcome,omitempty"`
	AIScore     int    `json:"aiScore"`
	PlayerScore int    `json:"playerScore"`
}

// Response represents the output to the plugin executor.
type Response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// players are tried in order; the first one on PATH plays WAV from stdin.
var players = [][]string{
	{"paplay"},
	{"aplay", "-q", "-"},
	{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet", "-"},
}

// pipeCapacity is the smallest default pipe buffer on Linux. A stream that
// fits is written in full before the player reads anything.
const pipeCapacity = 64 << 10

func main() {
	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeErrorResponse(fmt.Sprintf("failed to decode request: %v", err))
		return
	}

	tones, ok := sounds[req.Event]
	if !ok {
		writeErrorResponse(fmt.Sprintf("no sound for event: %s", req.Event))
		return
	}

	if os.Getenv("RPS_SOUND_MUTE") != "" {
		writeSuccessResponse()
		return
	}

	if err := play(req.Event, tones); err != nil {
		writeErrorResponse(fmt.Sprintf("event %s: %v", req.Event, err))
		return
	}

	writeSuccessResponse()
}

// play renders the event's tones and hands them to the player without
// waiting, so the game is not held up by playback. Nothing touches disk.
// Without an audio player it rings the terminal bell.
func play(event string, tones []tone) error {
	player := findPlayer()
	if player == nil {
		_, err := fmt.Fprint(os.Stderr, "\a")
		return err
	}

	var wav bytes.Buffer
	if err := writeWAV(&wav, render(tones)); err != nil {
		return err
	}
	if wav.Len() > pipeCapacity {
		return fmt.Errorf("stream is %d bytes, over the %d byte pipe buffer", wav.Len(), pipeCapacity)
	}

	cmd, err := start(player, wav.Bytes())
	if err != nil {
		return fmt.Errorf("%s: %w", player[0], err)
	}
	return cmd.Process.Release()
}

// start runs player with wav on its stdin. The write end is closed before
// start returns, so the player sees EOF once it has read the stream.
func start(player []string, wav []byte) (*exec.Cmd, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}

	cmd := exec.Command(player[0], player[1:]...)
	cmd.Stdin = r
	if err := cmd.Start(); err != nil {
		r.Close()
		w.Close()
		return nil, err
	}
	r.Close()

	if _, err := w.Write(wav); err != nil {
		w.Close()
		return cmd, err
	}
	return cmd, w.Close()
}

func findPlayer() []string {
	for _, p := range players {
		if _, err := exec.LookPath(p[0]); err == nil {
			return p
		}
	}
	return nil
}

// writeErrorResponse writes an error response to stdout.
func writeErrorResponse(errMsg string) {
	json.NewEncoder(os.Stdout).Encode(Response{Success: false, Error: errMsg})
}

// writeSuccessResponse writes a success response to stdout.
func writeSuccessResponse() {
	json.NewEncoder(os.Stdout).Encode(Response{Success: true})
}
