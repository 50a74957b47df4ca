package config

type (
	DriverConfig struct {
		MongoDB  MongoDB
		Redis    Redis
		RabbitMQ RabbitMQ
		Minio    Minio
		SMTP     SMTP
		Logger   Logger
	}
	MongoDB struct {
		Port     string
		Host     string
		DbName   string
		Username string
		Password string
	}
	Redis struct {
		Host     string
		Port     string
		Password string
	}
	RabbitMQ struct {
		Port     string
		Host     string
		Username string
		Password string
	}
	Minio struct {
		Port       string
		Host       string
		Username   string
		Password   string
		BucketName string
		UseSSL     bool
	}
	SMTP struct {
		Host        string
		Port        int
		Username    string
		Password    string
		EmailSender string
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
)

type (
	InternalConfig struct {
		App      App
		JWT      JWT
		Razorpay Razorpay
		Google   Google
		Calendar Calendar
		Worker   Worker
	}
	App struct {
		Env                        string
		Port                       string
		Address                    string
		Timezone                   string
		EndpointPrefix             string
		MaxRequests                int
		MaxTimeRequestsPerSeconds  int
		ShutdownTimeout            int
		RequestBodyLimitInMegabyte int
		Currency                   string
	}
	JWT struct {
		Secret        string
		ExpTimeInHour int
	}
	Razorpay struct {
		KeyID     string
		KeySecret string
	}
	Google struct {
		ClientID string
	}
	Calendar struct {
		ClientID     string
		ClientSecret string
		RefreshToken string
		CalendarID   string
	}
	Worker struct {
		FanOutMaxRetries        int
		MailerSendsPerMinute    int
		ReconcileCronSpec       string
		LeaderLockTTLInSeconds  int
		InvoiceUrlExpiryInHours int
	}
)
