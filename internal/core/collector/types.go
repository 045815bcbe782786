package collector

// Type represents the type of collector sink.
type Type string

const (
	// TypeLog logs report summaries without external delivery.
	TypeLog Type = "log"
	// TypeWebhook delivers reports via HTTP POST.
	TypeWebhook Type = "webhook"
	// TypeRedis pushes reports onto a Redis list.
	TypeRedis Type = "redis"
	// TypeMongoDB archives reports into a MongoDB collection.
	TypeMongoDB Type = "mongodb"
)
