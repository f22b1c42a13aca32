package reactivity

// SubscriberCount reports how many effects currently depend on key of target.
func SubscriberCount(rs *ReactiveSystem, target, key any) int {
	return rs.subscriberCount(target, key)
}
