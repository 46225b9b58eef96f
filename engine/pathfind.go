package engine

import (
	"container/heap"

	"railserver/models"
)

// WeightFunc は区間1つあたりの移動コストを返す
type WeightFunc func(models.RailSegment) int

type adjEdge struct {
	to     models.BoardPoint
	weight int
}

type pqItem struct {
	point models.BoardPoint
	dist  int
}

type pointQueue []pqItem

func (q pointQueue) Len() int            { return len(q) }
func (q pointQueue) Less(i, j int) bool  { return q[i].dist < q[j].dist }
func (q pointQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *pointQueue) Push(x interface{}) { *q = append(*q, x.(pqItem)) }
func (q *pointQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// Dijkstra はsourceからの単一始点最短経路を求める。
// 区間リストは無向グラフとして扱う。weightがnilの場合は全区間コスト1。
// 戻り値のマップに存在しない点は到達不能（距離無限大）を意味する。
// 共有状態を持たないので、何度呼んでも互いに影響しない
func Dijkstra(edges []models.RailSegment, source models.BoardPoint, weight WeightFunc) (map[models.BoardPoint]int, map[models.BoardPoint]models.BoardPoint) {
	if weight == nil {
		weight = func(models.RailSegment) int { return 1 }
	}

	adjacency := make(map[models.BoardPoint][]adjEdge)
	for _, edge := range edges {
		w := weight(edge)
		adjacency[edge[0]] = append(adjacency[edge[0]], adjEdge{to: edge[1], weight: w})
		adjacency[edge[1]] = append(adjacency[edge[1]], adjEdge{to: edge[0], weight: w})
	}

	distances := map[models.BoardPoint]int{source: 0}
	predecessors := map[models.BoardPoint]models.BoardPoint{}

	queue := &pointQueue{{point: source, dist: 0}}
	heap.Init(queue)
	for queue.Len() > 0 {
		item := heap.Pop(queue).(pqItem)
		if item.dist > distances[item.point] {
			continue // 既により短い経路で確定済み
		}
		for _, edge := range adjacency[item.point] {
			next := item.dist + edge.weight
			if current, ok := distances[edge.to]; !ok || next < current {
				distances[edge.to] = next
				predecessors[edge.to] = item.point
				heap.Push(queue, pqItem{point: edge.to, dist: next})
			}
		}
	}
	return distances, predecessors
}
