/*
Package gconf keeps a single configuration object per extension in the
state, under the "_c:<pkg>" key. Configuration is loaded from genesis with
InitConfig and may later be changed by the configuration owner through
UpdateConfigurationHandler.
*/
package gconf
