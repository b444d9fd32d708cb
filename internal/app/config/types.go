package config

type (
	InternalConfig struct {
		App      App
		JWT      JWT
		Identity Identity
		Calendar Calendar
		Mailer   Mailer
	}

	DriverConfig struct {
		MongoDB  MongoDB
		Redis    Redis
		Logger   Logger
		SMTP     SMTP
		RabbitMQ RabbitMQ
	}

	App struct {
		Env                  string
		Port                 string
		Version              string
		EndpointPrefix       string
		Timezone             string
		MaxRequests          int
		ShutdownTimeout      int
		SessionExpiryInHours int
	}

	JWT struct {
		Secret        string
		ExpTimeInHour int
	}

	// Identity is the external OAuth-style identity provider used for login
	// and for the incremental calendar-consent flow.
	Identity struct {
		BaseUrl      string
		ClientID     string
		ClientSecret string
	}

	// Calendar is the external calendar/meeting provider REST API.
	Calendar struct {
		BaseUrl           string
		RequestsPerSecond float64
		Burst             int
		TimeoutInSeconds  int
	}

	Mailer struct {
		Queue string
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
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
	SMTP struct {
		Host        string
		Port        int
		Username    string
		Password    string
		EmailSender string
	}
	RabbitMQ struct {
		Port     string
		Host     string
		Username string
		Password string
	}
)
