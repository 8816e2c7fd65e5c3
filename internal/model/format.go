package model

import (
	"bytes"
	"fmt"
	"strconv"
)

// modelDocument mirrors the parts of the XGBoost JSON schema we evaluate.
type modelDocument struct {
	Learner struct {
		FeatureNames    []string `json:"feature_names"`
		GradientBooster struct {
			Name  string `json:"name"`
			Model struct {
				Trees    []rawTree `json:"trees"`
				TreeInfo []int     `json:"tree_info"`
			} `json:"model"`
		} `json:"gradient_booster"`
		ModelParam struct {
			BaseScore  string `json:"base_score"`
			NumClass   string `json:"num_class"`
			NumFeature string `json:"num_feature"`
			NumTarget  string `json:"num_target"`
		} `json:"learner_model_param"`
		Objective struct {
			Name string `json:"name"`
		} `json:"objective"`
	} `json:"learner"`
	Version []int `json:"version"`
}

type rawTree struct {
	LeftChildren    []int32   `json:"left_children"`
	RightChildren   []int32   `json:"right_children"`
	SplitIndices    []int32   `json:"split_indices"`
	SplitConditions []float32 `json:"split_conditions"`
	DefaultLeft     []flag    `json:"default_left"`
	SplitType       []int     `json:"split_type"`
	TreeParam       struct {
		NumNodes string `json:"num_nodes"`
	} `json:"tree_param"`
}

// flag decodes booleans written either as JSON booleans or as 0/1 numbers.
type flag bool

// UnmarshalJSON implements json.Unmarshaler.
func (f *flag) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch string(b) {
	case "true":
		*f = true
		return nil
	case "false", "null":
		*f = false
		return nil
	}
	n, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("invalid boolean %s", b)
	}
	*f = n != 0
	return nil
}

// build validates the node arrays and converts them to a tree.
func (rt rawTree) build(numFeature int) (tree, error) {
	n := len(rt.LeftChildren)
	if n == 0 {
		return tree{}, fmt.Errorf("no nodes")
	}
	if rt.TreeParam.NumNodes != "" {
		if declared, err := strconv.Atoi(rt.TreeParam.NumNodes); err == nil && declared != n {
			return tree{}, fmt.Errorf("num_nodes is %d but arrays hold %d nodes", declared, n)
		}
	}
	if len(rt.RightChildren) != n || len(rt.SplitIndices) != n ||
		len(rt.SplitConditions) != n || len(rt.DefaultLeft) != n {
		return tree{}, fmt.Errorf("node arrays have inconsistent lengths")
	}
	for _, st := range rt.SplitType {
		if st != 0 {
			return tree{}, fmt.Errorf("categorical splits are not supported")
		}
	}

	t := tree{
		left:        rt.LeftChildren,
		right:       rt.RightChildren,
		feature:     rt.SplitIndices,
		cond:        rt.SplitConditions,
		defaultLeft: make([]bool, n),
	}
	for i, d := range rt.DefaultLeft {
		t.defaultLeft[i] = bool(d)
	}

	for i := range n {
		l, r := t.left[i], t.right[i]
		if l == -1 {
			if r != -1 {
				return tree{}, fmt.Errorf("node %d has a right child but no left child", i)
			}
			continue
		}
		if l <= 0 || int(l) >= n || r <= 0 || int(r) >= n {
			return tree{}, fmt.Errorf("node %d has out of range children %d/%d", i, l, r)
		}
		if f := t.feature[i]; f < 0 || int(f) >= numFeature {
			return tree{}, fmt.Errorf("node %d splits on feature %d, model has %d", i, f, numFeature)
		}
	}

	// Every node must be reached exactly once from the root, which rules
	// out cycles and shared subtrees.
	visited := make([]bool, n)
	stack := []int32{0}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[node] {
			return tree{}, fmt.Errorf("node %d is reachable twice", node)
		}
		visited[node] = true
		if t.left[node] != -1 {
			stack = append(stack, t.left[node], t.right[node])
		}
	}

	return t, nil
}
