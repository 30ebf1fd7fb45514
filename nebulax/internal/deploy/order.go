package deploy

import "slices"

// TopologicalOrder returns the steps so that every step comes after its dependencies.
// Ties are broken by declaration order, so the result is deterministic.
func (u *Unit) TopologicalOrder() []Future {
	inDegree := make([]int, len(u.steps))
	dependents := make([][]int, len(u.steps))
	for i, s := range u.steps {
		inDegree[i] = len(s.dependencies)
		for _, dep := range s.dependencies {
			j := u.index[dep.Id()]
			dependents[j] = append(dependents[j], i)
		}
	}

	// queue is kept sorted by declaration index.
	queue := make([]int, 0, len(u.steps))
	for i, d := range inDegree {
		if d == 0 {
			queue = append(queue, i)
		}
	}

	order := make([]Future, 0, len(u.steps))
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		order = append(order, u.steps[i].future)
		for _, j := range dependents[i] {
			inDegree[j]--
			if inDegree[j] == 0 {
				pos, _ := slices.BinarySearch(queue, j)
				queue = slices.Insert(queue, pos, j)
			}
		}
	}
	return order
}

// Levels groups steps into batches: all steps of a batch depend only on earlier
// batches and may be deployed in parallel.
func (u *Unit) Levels() [][]Future {
	level := make([]int, len(u.steps))
	var levels [][]Future
	for i, s := range u.steps {
		for _, dep := range s.dependencies {
			if l := level[u.index[dep.Id()]] + 1; l > level[i] {
				level[i] = l
			}
		}
		if level[i] == len(levels) {
			levels = append(levels, nil)
		}
		levels[level[i]] = append(levels[level[i]], s.future)
	}
	return levels
}
