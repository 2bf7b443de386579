package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LoadConfig 从多个源加载配置：.env 文件、config.yaml、以及 ./config/ 目录下的 JSON 文件。
// 配置加载顺序:
// 1. .env 文件 (用于环境变量, 如 BOT_TOKEN)
// 2. config.yaml (基础配置)
// 3. config/vanity_config.json (合并到主配置)
// 环境变量会覆盖配置文件中的同名设置。
func LoadConfig() {
	// 1. 从 .env 文件加载环境变量，如果文件不存在则忽略。
	if err := godotenv.Load(); err != nil {
		log.Printf("未找到 .env 文件，将跳过加载。")
	}

	setDefaults()

	// 2. 设置并读取基础配置文件 (config.yaml)。
	viper.SetConfigName("config")                          // 配置文件名 (无扩展名)
	viper.SetConfigType("yaml")                            // 配置文件类型
	viper.AddConfigPath(".")                               // 在当前工作目录中查找
	viper.AutomaticEnv()                                   // 自动读取匹配的环境变量
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // 将配置键中的'.'替换为'_'以匹配环境变量

	// 读取基础配置。
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// 配置文件未找到是正常情况，可以继续。
			log.Printf("未找到基础配置文件 (config.yaml)，将仅使用环境变量和默认值。")
		} else {
			// 如果找到配置文件但解析出错，则终止程序。
			panic(fmt.Errorf("解析基础配置文件时发生致命错误: %w", err))
		}
	}

	// 3. 合并虚荣身份组配置文件 (config/vanity_config.json)。
	// MergeInConfig 会将配置合并到现有的 viper 配置中。
	viper.SetConfigName("vanity_config")
	viper.SetConfigType("json")
	viper.AddConfigPath("./config")

	if err := viper.MergeInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Printf("未找到虚荣身份组配置文件 (config/vanity_config.json)，将跳过合并。")
		} else {
			panic(fmt.Errorf("合并虚荣身份组配置文件时发生致命错误: %w", err))
		}
	}
}

// setDefaults 注册所有配置项的默认值，config.yaml 或环境变量可覆盖。
func setDefaults() {
	viper.SetDefault("vanity.data_dir", "data/vanity")
	viper.SetDefault("vanity.db_path", "data/vanity/history.db")
	viper.SetDefault("vanity.schedule", "@every 5m")
	viper.SetDefault("vanity.sweep_at_startup", false)
	viper.SetDefault("vanity.history_retention_days", 90)
	viper.SetDefault("premium.file", "data/premium.json")
	viper.SetDefault("premium.grpc_addr", "")
	viper.SetDefault("premium.fail_open", true)
}
