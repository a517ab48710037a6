// Command seed generates a starter life-quest board and imports it into
// a running API instance via POST /api/boards.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

type quest struct {
	ID            string
	Label         string
	Description   string
	Status        string
	Rarity        string
	Reward        string
	Icon          string
	Tags          []string
	ProgressTotal float64
	Children      []quest
}

var questTree = quest{
	ID:          "root",
	Label:       "Grand Adventure Log",
	Description: "Unlock every life quest across travel, mastery, culture, and soul.",
	Status:      "tracking",
	Rarity:      "legendary",
	Reward:      "Life Mastery Emblem",
	Icon:        "🌟",
	Tags:        []string{"overview"},
	Children: []quest{
		{
			ID:          "pillar-travel",
			Label:       "Travel & Nature Wonders",
			Description: "Complete iconic natural marvel quests around the globe.",
			Rarity:      "legendary",
			Reward:      "Nomad's Compass",
			Icon:        "🌍",
			Tags:        []string{"pillar", "travel"},
			Children: []quest{
				{ID: "travel-northern-lights", Label: "See the Northern Lights", Description: "Witness aurora borealis in Norway, Iceland, or Finland.", Rarity: "rare", Reward: "Aurora Cloak", Icon: "🌌", Tags: []string{"travel", "nature"}, ProgressTotal: 1},
				{ID: "travel-machu-picchu", Label: "Hike to Machu Picchu", Description: "Complete the trek to the Incan citadel in Peru.", Rarity: "rare", Reward: "Incan Trailband", Icon: "🏛️", Tags: []string{"travel", "hiking"}, ProgressTotal: 1},
				{ID: "travel-safari-big-five", Label: "See the Big Five", Description: "Spot the Big Five on an African safari.", Rarity: "rare", Reward: "Safari Ranger Badge", Icon: "🦁", Tags: []string{"wildlife", "travel"}, ProgressTotal: 1},
				{ID: "travel-antarctica-cruise", Label: "Cruise to Antarctica", Description: "Embark on an expedition to the Antarctic Peninsula.", Rarity: "legendary", Reward: "Polar Explorer Flag", Icon: "🧊", Tags: []string{"travel", "polar"}, ProgressTotal: 1},
			},
		},
		{
			ID:          "pillar-adventure",
			Label:       "Physical Challenges",
			Description: "Face endurance epics, aerial thrills, and survival mastery.",
			Rarity:      "legendary",
			Reward:      "Trailblazer's Crest",
			Icon:        "🧗",
			Tags:        []string{"pillar", "adventure"},
			Children: []quest{
				{ID: "physical-marathon", Label: "Run a Marathon", Description: "Finish a marathon or ultramarathon.", Rarity: "epic", Reward: "Endurance Laurel", Icon: "🏅", Tags: []string{"running", "endurance"}, ProgressTotal: 1},
				{ID: "physical-world-mountain", Label: "Summit an Iconic Mountain", Description: "Reach the top of Fuji, Kilimanjaro, or Everest Base Camp.", Rarity: "legendary", Reward: "Peak Conqueror Patch", Icon: "🏔️", Tags: []string{"adventure", "mountains"}, ProgressTotal: 1},
				{ID: "physical-skydive", Label: "Skydive from 15,000 ft", Description: "Leap from the sky above iconic landscapes.", Rarity: "rare", Reward: "Skyfall Wings", Icon: "🪂", Tags: []string{"adrenaline"}, ProgressTotal: 1},
				{ID: "physical-survival-course", Label: "Complete Survival Course", Description: "Finish a multi-day survival or bushcraft course.", Rarity: "rare", Reward: "Fieldcraft Badge", Icon: "🧭", Tags: []string{"survival", "skills"}, ProgressTotal: 1},
			},
		},
		{
			ID:          "pillar-skills",
			Label:       "Skills & Mastery",
			Description: "Earn fluency, craft, and deep expertise.",
			Rarity:      "legendary",
			Reward:      "Scholar's Seal",
			Icon:        "🎓",
			Tags:        []string{"pillar", "skills"},
			Children: []quest{
				{ID: "skill-language-fluency", Label: "Reach Fluency in a Language", Description: "Hold hour-long conversations in a new language.", Rarity: "epic", Reward: "Polyglot Pin", Icon: "🗣️", Tags: []string{"language", "learning"}, ProgressTotal: 60},
				{ID: "skill-instrument", Label: "Master an Instrument", Description: "Perform three songs live on a new instrument.", Rarity: "rare", Reward: "Maestro Clef", Icon: "🎸", Tags: []string{"music", "practice"}, ProgressTotal: 3},
				{ID: "skill-cook-cuisines", Label: "Cook Ten World Cuisines", Description: "Prepare a signature dish from ten cuisines.", Rarity: "rare", Reward: "Golden Ladle", Icon: "🍜", Tags: []string{"cooking"}, ProgressTotal: 10},
			},
		},
		{
			ID:          "pillar-soul",
			Label:       "Mind & Soul",
			Description: "Record gratitude, refine mornings, and serve others.",
			Rarity:      "legendary",
			Reward:      "Inner Compass",
			Icon:        "🧘",
			Tags:        []string{"pillar", "soul"},
			Children: []quest{
				{ID: "mind-gratitude-journal", Label: "Keep a Gratitude Journal", Description: "Record gratitude entries for 200 days.", Rarity: "rare", Reward: "Gratitude Quill", Icon: "🖊️", Tags: []string{"mindfulness", "habit"}, ProgressTotal: 200},
				{ID: "mind-digital-detox", Label: "Complete Digital Detox Year", Description: "Take one tech-free weekend each month for a year.", Rarity: "epic", Reward: "Offline Halo", Icon: "📵", Tags: []string{"balance", "habit"}, ProgressTotal: 12},
				{ID: "mind-martial-arts-blackbelt", Label: "Earn a Martial Arts Black Belt", Description: "Train to black belt in a martial art.", Rarity: "legendary", Reward: "Dojo Crest", Icon: "🥋", Tags: []string{"discipline"}, ProgressTotal: 1},
			},
		},
	},
}

type walker struct {
	nodes     []map[string]interface{}
	edges     []map[string]interface{}
	nextIndex int
}

func (w *walker) walk(q quest, parentID string, depth int) {
	rowIndex := w.nextIndex
	w.nextIndex++

	total := q.ProgressTotal
	if total == 0 {
		total = float64(len(q.Children))
		if total == 0 {
			total = 1
		}
	}

	status := q.Status
	if status == "" {
		status = "locked"
	}
	rarity := q.Rarity
	if rarity == "" {
		rarity = "common"
	}

	w.nodes = append(w.nodes, map[string]interface{}{
		"id":   q.ID,
		"type": "achievement",
		"position": map[string]interface{}{
			"x": float64(depth * 360),
			"y": float64(rowIndex * 180),
		},
		"data": map[string]interface{}{
			"label":       q.Label,
			"description": q.Description,
			"status":      status,
			"rarity":      rarity,
			"reward":      q.Reward,
			"icon":        q.Icon,
			"tags":        q.Tags,
			"progress": map[string]interface{}{
				"current": 0,
				"total":   total,
			},
		},
	})

	if parentID != "" {
		w.edges = append(w.edges, map[string]interface{}{
			"id":     fmt.Sprintf("edge-%s-%s", parentID, q.ID),
			"source": parentID,
			"target": q.ID,
			"type":   "smoothstep",
		})
	}

	for _, child := range q.Children {
		w.walk(child, q.ID, depth+1)
	}
}

func main() {
	apiBase := flag.String("api", "http://localhost:8080", "API base URL")
	flag.Parse()

	w := &walker{}
	w.walk(questTree, "", 0)

	// The root quest tracks every other quest on the board
	for _, node := range w.nodes {
		if node["id"] == "root" {
			data := node["data"].(map[string]interface{})
			progress := data["progress"].(map[string]interface{})
			progress["total"] = len(w.nodes) - 1
		}
	}

	board := map[string]interface{}{
		"name":        "Life Quest Achievements",
		"description": "A gamified board turning life goals into quest achievements.",
		"theme":       map[string]interface{}{"palette": "overworld", "accent": "#22c55e"},
		"layout":      map[string]interface{}{"direction": "TB"},
		"nodes":       w.nodes,
		"edges":       w.edges,
	}

	payload, err := json.Marshal(board)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode board: %v\n", err)
		os.Exit(1)
	}

	endpoint := strings.TrimRight(*apiBase, "/") + "/api/boards"
	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Post(endpoint, "application/json", bytes.NewReader(payload))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to import board: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusCreated {
		fmt.Fprintf(os.Stderr, "Request failed (%d): %s\n", resp.StatusCode, body)
		os.Exit(1)
	}

	fmt.Printf("Imported board with %d nodes and %d edges via %s\n", len(w.nodes), len(w.edges), endpoint)
}
