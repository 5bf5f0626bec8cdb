package components

import (
	"strconv"

	"github.com/hugozap/volare/pkg/record"
	"github.com/hugozap/volare/pkg/scene"
)

// buildIshikawa assembles a fishbone ("Ishikawa") diagram: a horizontal
// spine ending in the problem statement, with one vertical "bone" per
// category branching off it, each listing its causes. It is entirely
// assembled from vstack/hstack/text primitives, per the
// "custom components as callbacks" note.
//
// Expected attributes:
//
//	problem: string                                   // fish head text
//	categories: [{name: string, causes: [string,...]}] // one bone per entry
func buildIshikawa(id string, attrs record.Record, _ map[string]record.Record, b *scene.Builder) (scene.TreeNode, error) {
	problem, _ := attrs["problem"].(string)
	if problem == "" {
		problem = "Problem"
	}

	var boneNodes []scene.TreeNode
	var boneHandles []scene.Handle

	categories, _ := attrs["categories"].([]any)
	for ci, raw := range categories {
		cat, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		name, _ := cat["name"].(string)

		var causeHandles []scene.Handle
		var causeNodes []scene.TreeNode

		causes, _ := cat["causes"].([]any)
		for ki, c := range causes {
			text, _ := c.(string)
			th := b.PushText(scene.Text{
				ID:       subID(id, ci, "cause", ki),
				Content:  text,
				FontSize: 10,
				Color:    "#333333",
			})
			causeHandles = append(causeHandles, th)
			causeNodes = append(causeNodes, scene.TreeNode{Handle: th})
		}

		labelH := b.PushText(scene.Text{
			ID:       subID(id, ci, "label", 0),
			Content:  name,
			FontSize: 12,
			Color:    "#000000",
		})

		boneChildren := append([]scene.Handle{labelH}, causeHandles...)
		boneNode := scene.TreeNode{Handle: labelH}
		allNodes := append([]scene.TreeNode{boneNode}, causeNodes...)

		bone := scene.Stack{
			ID:       subID(id, ci, "bone", 0),
			Kind:     scene.KindVStack,
			Width:    scene.Dim{Mode: scene.ModeContent},
			Height:   scene.Dim{Mode: scene.ModeContent},
			Spacing:  4,
			Align:    "left",
			Children: boneChildren,
		}
		boneH := b.PushStack(bone)
		boneNodes = append(boneNodes, scene.TreeNode{Handle: boneH, Children: allNodes})
		boneHandles = append(boneHandles, boneH)
	}

	headH := b.PushText(scene.Text{
		ID:       subID(id, 0, "head", 0),
		Content:  problem,
		FontSize: 14,
		Color:    "#000000",
	})

	spineChildren := append(append([]scene.Handle{}, boneHandles...), headH)
	spineNodes := append(append([]scene.TreeNode{}, boneNodes...), scene.TreeNode{Handle: headH})

	spine := scene.Stack{
		ID:       id,
		Kind:     scene.KindHStack,
		Width:    scene.Dim{Mode: scene.ModeContent},
		Height:   scene.Dim{Mode: scene.ModeContent},
		Spacing:  20,
		Align:    "bottom",
		Children: spineChildren,
	}
	spineH := b.PushStack(spine)

	return scene.TreeNode{Handle: spineH, Children: spineNodes}, nil
}

func subID(parentID string, branch int, kind string, index int) string {
	return parentID + "." + kind + "." + strconv.Itoa(branch) + "." + strconv.Itoa(index)
}
