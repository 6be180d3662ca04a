package config

import (
	"bufio"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"chainmap/lib/logger"
)

type TableProperties struct {
	Capacity      int     `cfg:"capacity"`
	LoadFactor    float64 `cfg:"load-factor"`
	Shards        int     `cfg:"shards"`
	LogLevel      string  `cfg:"loglevel"`
	LogFormat     string  `cfg:"logformat"`
	LogFile       string  `cfg:"logfile"`
	LogMaxSize    int     `cfg:"logmaxsize"`
	LogMaxDays    int     `cfg:"logmaxdays"`
	LogMaxBackups int     `cfg:"logmaxbackups"`
	LogGrowth     bool    `cfg:"loggrowth"`
}

var Properties *TableProperties

// Default 返回未加载配置文件时使用的属性
func Default() *TableProperties {
	return &TableProperties{
		Capacity:   16,
		LoadFactor: 0.75,
		Shards:     16,
		LogLevel:   "info",
		LogFormat:  "console",
		LogGrowth:  true,
	}
}

func init() {
	Properties = Default()
}

// SetupConfigProperties 加载配置文件并据此重建全局 logger，失败时 panic
func SetupConfigProperties(filename string) {
	p, err := Load(filename)
	if err != nil {
		panic(err)
	}
	Properties = p
	logger.Setup(p.LoggerSettings())
}

func Load(filename string) (*TableProperties, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "open config %s", filename)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(file)
	return Parse(file)
}

// Parse 读取 "key value" 形式的配置，未出现的项保持默认值
func Parse(reader io.Reader) (*TableProperties, error) {
	res := Default()
	m := make(map[string]string)
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		pivot := strings.IndexAny(line, " \t")
		if pivot > 0 && pivot < len(line)-1 {
			key := line[0:pivot]
			val := strings.TrimSpace(line[pivot+1:])
			m[strings.ToLower(key)] = val
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "scan config")
	}
	if err := fillProperties(res, m); err != nil {
		return nil, err
	}
	return res, nil
}

func (p *TableProperties) LoggerSettings() *logger.Settings {
	return &logger.Settings{
		Level:      p.LogLevel,
		Format:     p.LogFormat,
		Filename:   p.LogFile,
		MaxSize:    p.LogMaxSize,
		MaxDays:    p.LogMaxDays,
		MaxBackups: p.LogMaxBackups,
	}
}

func fillProperties(p *TableProperties, m map[string]string) error {
	fields := reflect.TypeOf(p).Elem()
	values := reflect.ValueOf(p).Elem()
	n := fields.NumField()
	for i := 0; i < n; i++ {
		field := fields.Field(i)
		fieldVal := values.Field(i)
		key, ok := field.Tag.Lookup("cfg")
		if !ok {
			key = field.Name
		}
		val, ok := m[strings.ToLower(key)]
		if !ok {
			continue
		}
		switch field.Type.Kind() {
		case reflect.String:
			fieldVal.SetString(val)
		case reflect.Int:
			intV, err := strconv.ParseInt(val, 10, 64)
			if err != nil {
				return errors.Wrapf(err, "config %s", key)
			}
			fieldVal.SetInt(intV)
		case reflect.Float64:
			floatV, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return errors.Wrapf(err, "config %s", key)
			}
			fieldVal.SetFloat(floatV)
		case reflect.Bool:
			fieldVal.SetBool("yes" == val)
		}
	}
	return nil
}
