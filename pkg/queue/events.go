package queue

import "github.com/ThreeDotsLabs/watermill/message"

// -------------------------- 基于业务封装 events --------------------------

// PublishItemStored 发布 av.item.stored 事件。
// 用于上传工作流完成主记录落库后，通知下游流程（统计、审计等）。
// 可通过可选项 opts 注入 TraceID、Producer 等头部信息。
func PublishItemStored(pub message.Publisher, payload ItemStoredPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicItemStored, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicItemStored, msg)
}

// ParseItemStored 将 Watermill 消息解析为强类型 Envelope（ItemStoredPayload）。
func ParseItemStored(msg *message.Message) (Message[ItemStoredPayload], error) {
	return ParseWatermillMessage[ItemStoredPayload](msg)
}

// PublishItemDeleted 发布 av.item.deleted 事件。
func PublishItemDeleted(pub message.Publisher, payload ItemDeletedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicItemDeleted, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicItemDeleted, msg)
}

// ParseItemDeleted 将 Watermill 消息解析为强类型 Envelope（ItemDeletedPayload）。
func ParseItemDeleted(msg *message.Message) (Message[ItemDeletedPayload], error) {
	return ParseWatermillMessage[ItemDeletedPayload](msg)
}

// PublishItemMoved 发布 av.item.moved 事件。
func PublishItemMoved(pub message.Publisher, payload ItemMovedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicItemMoved, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicItemMoved, msg)
}
