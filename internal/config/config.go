package config

import (
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const DefaultPath = "./config/application.yaml"

const envPrefix = "EVEBUZZ_"

type Application struct {
	Server    Server    `koanf:"server"`
	Api       Api       `koanf:"api"`
	Dashboard Dashboard `koanf:"dashboard"`
	Analytics Analytics `koanf:"analytics"`
	Calendar  Calendar  `koanf:"calendar"`
	Catalog   Catalog   `koanf:"catalog"`
}

type Server struct {
	Addr string `koanf:"addr"`
}

type Api struct {
	BaseUrl string        `koanf:"baseurl"`
	Token   string        `koanf:"token"`
	Timeout time.Duration `koanf:"timeout"`
}

type Dashboard struct {
	Timezone string `koanf:"timezone"`
}

type Analytics struct {
	TopLocations       int  `koanf:"toplocations"`
	ListLocations      int  `koanf:"listlocations"`
	FoldCategoryCase   bool `koanf:"foldcategorycase"`
	NormalizeLocations bool `koanf:"normalizelocations"`
}

type Calendar struct {
	RangeMode string `koanf:"rangemode"`
	WeekStart string `koanf:"weekstart"`
}

type Catalog struct {
	PageSize int    `koanf:"pagesize"`
	Language string `koanf:"language"`
}

func Defaults() Application {
	return Application{
		Server: Server{
			Addr: ":8181",
		},
		Api: Api{
			BaseUrl: "http://localhost:8000/api",
			Timeout: 10 * time.Second,
		},
		Dashboard: Dashboard{
			Timezone: "UTC",
		},
		Analytics: Analytics{
			TopLocations:  10,
			ListLocations: 8,
		},
		Calendar: Calendar{
			RangeMode: "chronological",
			WeekStart: "sunday",
		},
		Catalog: Catalog{
			PageSize: 6,
			Language: "en",
		},
	}
}

// Load layers struct defaults, the YAML file at path and EVEBUZZ_ environment variables.
// Keys in the file may use snake_case (api.base_url) or the flattened form (api.baseurl).
func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Defaults(), "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	fileConfig := koanf.New(".")
	if err := fileConfig.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		for key, value := range fileConfig.All() {
			if err := k.Set(normalizeKey(key), value); err != nil {
				return Application{}, err
			}
		}
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(k, v string) (string, any) {
			// EVEBUZZ_API_BASE_URL -> api.baseurl
			section, rest, _ := strings.Cut(strings.ToLower(strings.TrimPrefix(k, envPrefix)), "_")
			return section + "." + strings.ReplaceAll(rest, "_", ""), v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		log.Errorf("error unmarshalling config: %v", err)
		return Application{}, err
	}

	return app, nil
}

func normalizeKey(key string) string {
	section, rest, found := strings.Cut(strings.ToLower(key), ".")
	if !found {
		return section
	}
	return section + "." + strings.ReplaceAll(rest, "_", "")
}
