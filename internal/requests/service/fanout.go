package service

import "shareit/pkg/model"

// FanOut attaches to each request the items listed in answer to it. Request
// order is kept and every request gets a non-nil item list.
func FanOut(requests []*model.Request, items []*model.Item) []*model.RequestView {
	byRequest := make(map[string][]model.ItemSummary, len(requests))
	for _, item := range items {
		if item.RequestID == "" {
			continue
		}
		byRequest[item.RequestID] = append(byRequest[item.RequestID], item.Summary())
	}

	views := make([]*model.RequestView, 0, len(requests))
	for _, request := range requests {
		answered := byRequest[request.ID]
		if answered == nil {
			answered = []model.ItemSummary{}
		}
		views = append(views, &model.RequestView{Request: *request, Items: answered})
	}
	return views
}
