// Demo collaborator: serves a canned session so the engine can be run
// end to end without the real processing backend. The first few results
// requests answer "processing" to exercise the polling path.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/model"
)

func demoResults(sessionID string) *model.SessionResults {
	scale := 1.8
	return &model.SessionResults{
		SessionID: sessionID,
		Timeline: &model.Timeline{
			VideoDuration: 39.255,
			Clips: []model.Clip{
				{Name: "intro", Start: 0, End: 3, BackgroundColor: "#10151c"},
				{Name: "video", Start: 3, End: 42.255, Media: []model.MediaItem{
					{Type: "video", Format: "mp4", URL: "media/recording.mp4"},
				}},
				{Name: "outro", Start: 42.255, End: 45.255, BackgroundColor: "#10151c"},
			},
		},
		Narrations: []model.Narration{
			{ClipName: "intro", Text: "Welcome!", GeneratedAudioURL: "audio/intro.mp3"},
			{ClipName: "video", Text: "Here is the walkthrough.", GeneratedAudioURL: "audio/video.mp3"},
			{ClipName: "outro", Text: "Thanks for watching.", GeneratedAudioURL: "audio/outro.mp3"},
		},
		RecordingWidth:  1920,
		RecordingHeight: 1080,
		AspectRatio:     "16:9",
		DisplayElements: []model.EffectGroup{
			{ClipName: "video", Effects: []model.DisplayEffect{
				{Start: 2, End: 9, Type: "zoom", Target: &model.EffectTarget{
					Bounds: &model.BoundingBox{X: 240, Y: 160, Width: 480, Height: 320},
				}},
				{Start: 14, End: 20, Type: "zoom",
					Target: &model.EffectTarget{Bounds: &model.BoundingBox{X: 900, Y: 500, Width: 300, Height: 200}},
					Style:  &model.EffectStyle{Zoom: &model.ZoomStyle{Scale: &scale}}},
			}},
		},
	}
}

func main() {
	addr := flag.String("addr", ":9100", "listen address")
	notReady := flag.Int("not-ready", 2, "results requests to answer 'processing' before completing")
	flag.Parse()

	var mu sync.Mutex
	attempts := map[string]int{}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/sessions/", func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		if len(parts) != 4 {
			http.NotFound(w, r)
			return
		}
		sessionID, op := parts[2], parts[3]

		switch op {
		case "results":
			mu.Lock()
			attempts[sessionID]++
			n := attempts[sessionID]
			mu.Unlock()
			w.Header().Set("Content-Type", "application/json")
			if n <= *notReady {
				json.NewEncoder(w).Encode(map[string]any{"status": "processing"})
				return
			}
			json.NewEncoder(w).Encode(map[string]any{
				"status":  "completed",
				"results": demoResults(sessionID),
			})
		case "save":
			body, _ := io.ReadAll(r.Body)
			fmt.Printf("save %s: %s\n", sessionID, body)
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	})

	fmt.Printf("demo collaborator on %s\n", *addr)
	if err := http.ListenAndServe(*addr, mux); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
