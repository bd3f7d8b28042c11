package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeyIOTDBType string = "IOT_DB_TYPE"
	EnvKeyIOTDbPath string = "IOT_DB_PATH"
	EnvKeyIOTDbDSN  string = "IOT_DB_DSN"

	EnvKeyIOTHttpHostPort string = "IOT_HTTP_HOST_PORT"
	EnvKeyIOTGrpcHostPort string = "IOT_GRPC_HOST_PORT"

	EnvKeyIOTDefaultRate  string = "IOT_DEFAULT_RATE"
	EnvKeyIOTDefaultBurst string = "IOT_DEFAULT_BURST"

	EnvKeyIOTLogDir string = "IOT_LOG_DIR"

	EnvKeyMQTTBroker   string = "MQTT_BROKER"
	EnvKeyMQTTClientID string = "MQTT_CLIENT_ID"
	EnvKeyMQTTUsername string = "MQTT_USERNAME"
	EnvKeyMQTTPassword string = "MQTT_PASSWORD"
	EnvKeyMQTTQoS      string = "MQTT_QOS"

	EnvKeyRedisAddr     string = "REDIS_ADDR"
	EnvKeyRedisPassword string = "REDIS_PASSWORD"
	EnvKeyRedisDB       string = "REDIS_DB"

	EnvKeyWebhookURL string = "WEBHOOK_URL"

	EnvKeyNotifyQueueSize string = "NOTIFY_QUEUE_SIZE"

	EnvKeyRulesFile string = "RULES_FILE"

	LoggerNameAlarmEngine   string = "alarm_engine"
	LoggerNameIOTCore       string = "iot_core"
	LoggerNameRestfulServer string = "restful_server"
	LoggerNameGrpcServer    string = "grpc_server"
	LoggerNameNotify        string = "notify"
	LoggerNameFeed          string = "feed"

	LoggerFieldIOTCategory        string = "category"
	LoggerCategoryIOTRule         string = "rule"
	LoggerCategoryIOTOccurrence   string = "occurrence"
	LoggerCategoryIOTReading      string = "reading"
	LoggerCategoryEngineEvaluate  string = "evaluate"
	LoggerCategoryEngineRegistry  string = "registry"
	LoggerCategoryNotifyPublish   string = "publish"
	LoggerCategoryNotifySubscribe string = "subscribe"
	LoggerCategoryFeedReplay      string = "replay"
)
