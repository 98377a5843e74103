package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Settings resolve in order: explicit command-line flag, then config
// file or ANY2MD_* environment value, then the flag default.

func settingString(cmd *cobra.Command, flag, key string) string {
	if !cmd.Flags().Changed(flag) {
		if v := viper.GetString(key); v != "" {
			return v
		}
	}
	v, _ := cmd.Flags().GetString(flag)
	return v
}

func settingInt(cmd *cobra.Command, flag, key string) int {
	if !cmd.Flags().Changed(flag) {
		if v := viper.GetInt(key); v > 0 {
			return v
		}
	}
	v, _ := cmd.Flags().GetInt(flag)
	return v
}

// settingBool can only enable through config, never disable, since every
// boolean flag in this CLI defaults to false.
func settingBool(cmd *cobra.Command, flag, key string) bool {
	if !cmd.Flags().Changed(flag) && viper.GetBool(key) {
		return true
	}
	v, _ := cmd.Flags().GetBool(flag)
	return v
}
