package structs

type EnviromentModel struct {
	Database         database
	ConcurrentAmount int
	RabbitMQ         rabbitmq
	Redis            redis
	Log              log
	Server           server
	Router           router
	Plan             plan
}

type server struct {
	AppAPI   string
	Timezone string
}

type database struct {
	Client      string
	MaxIdle     uint
	MaxLifeTime string
	MaxOpenConn uint
	User        string
	Password    string
	Host        string
	Db          string
	Params      string
	Port        string
	LogEnable   int
}

type rabbitmq struct {
	Domain string
	Queue  string
}

type redis struct {
	Enable   int
	Addr     string
	Password string
	DB       int
	LockTTL  string
}

type log struct {
	Dir            string
	ElkEnable      int
	ElkIndex       string
	ElkURL         string
	LogstashEnable int
	LogstashURL    string
	LogstashIndex  string
}

type router struct {
	Port int
}

type plan struct {
	DefaultType string
}
